package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/services"
)

type Handler interface {
	HandleHealth(c *gin.Context)
	HandleTaskIDMiddleware(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetStats(c *gin.Context)
	HandleGetNotifications(c *gin.Context)
	HandleGetFilter(c *gin.Context)
	HandleSetFilter(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	controller *services.Controller
}

func New(
	logger zerolog.Logger,
	controller *services.Controller,
) Handler {
	return &handlerImpl{
		logger:     logger,
		controller: controller,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/health", h.HandleHealth)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.POST("/:id/toggle", h.HandleTaskIDMiddleware, h.HandleToggleTask)
	tasksRouter.DELETE("/:id", h.HandleTaskIDMiddleware, h.HandleDeleteTask)

	router.GET("/stats", h.HandleGetStats)
	router.GET("/notifications", h.HandleGetNotifications)
	router.GET("/filter", h.HandleGetFilter)
	router.PUT("/filter", h.HandleSetFilter)
}
