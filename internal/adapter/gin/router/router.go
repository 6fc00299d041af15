package router

import (
	"net/http"

	"user-directory-web/api"
	"user-directory-web/internal/adapter/gin/handler"
	"user-directory-web/internal/adapter/gin/middleware"
	"user-directory-web/internal/adapter/view"
	"user-directory-web/pkg/logger"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	renderer *view.Renderer,
	rateLimiter *middleware.RateLimiter,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Ids are opaque and may contain an escaped "/", so match on the raw path
	router.UseRawPath = true
	router.UnescapePathValues = true

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestIDMiddleware())
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Middleware())

	router.SetHTMLTemplate(renderer.Template())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	// Contract of the users backend and its Swagger UI
	router.GET(api.BackendPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.BackendSpec)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL(api.BackendPath),
	)))

	// Users page
	router.GET("/", userHandler.Index)
	users := router.Group("/users")
	{
		users.POST("", userHandler.Submit)
		users.GET("/:id/edit", userHandler.Edit)
		users.GET("/:id/delete", userHandler.ConfirmDelete)
		users.POST("/:id/delete", userHandler.Delete)
	}

	return router
}
