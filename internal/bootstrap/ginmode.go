package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SetGinMode picks gin's mode from the environment. LOG_LEVEL=debug wins so
// the route table can be inspected in any environment.
func SetGinMode(env, logLevel string) {
	if strings.EqualFold(logLevel, "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
