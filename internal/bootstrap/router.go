package bootstrap

import (
	httpapi "github.com/GoSim-25-26J-441/items-api/internal/api/http"
	"github.com/GoSim-25-26J-441/items-api/internal/api/http/middleware"
	itemshttp "github.com/GoSim-25-26J-441/items-api/internal/items/http"
	"github.com/GoSim-25-26J-441/items-api/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	// DB backs the readiness probe. Leave nil to report the store as disabled.
	DB      httpapi.Pinger
	Items   itemshttp.Store
	Metrics *metrics.Manager
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	if dep.Metrics != nil {
		r.Use(dep.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	itemsHandler := itemshttp.New(dep.Items)
	itemsHandler.Register(r.Group("/items"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
