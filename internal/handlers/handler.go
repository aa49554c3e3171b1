package handlers

import (
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/service"
)

// Handler wires the node's HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Identity endpoint, doubles as a liveness probe.
	router.GET("/", h.root)

	h.registerVitalsRoutes(router)

	return router
}

func (h *Handler) registerVitalsRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/vitals", h.addVitals)
		api.GET("/get_latest_vital", h.getLatestVital)
	}
}
