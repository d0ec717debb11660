package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Greeting = "Hello World - Items API with PostgreSQL"

const (
	DBConnected    = "connected"
	DBDisconnected = "disconnected"
	DBDisabled     = "disabled"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type ReadinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	pingTimeout time.Duration
}

func NewHealthHandler(serviceName, version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		pingTimeout: time.Second,
	}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": Greeting})
}

// Readiness pings the database. A nil Pinger reports "disabled" and stays
// healthy so the service can run without a store in tests.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, ReadinessResponse{Status: "healthy", Database: DBDisabled})
		return
	}

	pingCtx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	if err := h.db.PingContext(pingCtx); err != nil {
		log.Printf("[health] db ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "unhealthy", Database: DBDisconnected})
		return
	}

	c.JSON(http.StatusOK, ReadinessResponse{Status: "healthy", Database: DBConnected})
}

// Liveness never touches the database.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Readiness)
	r.GET("/healthz", h.Liveness)
}
