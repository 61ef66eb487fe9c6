package relay

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/uploadrelay/server/endpoint"
)

// RegisterRoutes attaches the relay's endpoints to the engine.
func (h *Handler) RegisterRoutes(engine *gin.Engine, serviceName string) {
	engine.GET("/health", endpoint.Health(serviceName))
	engine.POST("/upload", h.Upload)
}
