package routes

import (
	"github.com/gin-gonic/gin"
	"meeting-minutes/internal/api/v1/handlers"
	"meeting-minutes/internal/api/v1/services"
)

// ServiceContainer holds the services behind the HTTP routes
type ServiceContainer struct {
	MinutesService services.MinutesService
	JobService     services.JobService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer, minutesHandler *handlers.MinutesHandler) {
	router.POST("/minutes", minutesHandler.Upload)

	if container.JobService != nil {
		jobHandler := handlers.NewJobHandler(container.JobService)
		jobs := router.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
		}
	}
}
