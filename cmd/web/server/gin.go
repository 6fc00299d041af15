package server

import (
	"net/http"
	"time"

	"user-directory-web/internal/adapter/gin/handler"
	"user-directory-web/internal/adapter/gin/middleware"
	ginrouter "user-directory-web/internal/adapter/gin/router"
	"user-directory-web/internal/adapter/view"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the web server
func SetupGinServer(
	userHandler *handler.UserHandler,
	renderer *view.Renderer,
	rateLimiter *middleware.RateLimiter,
	serviceName string,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(userHandler, renderer, rateLimiter, serviceName, l)

	l.Info("web server configured",
		zap.String("address", addr),
		zap.String("swagger", "/swagger/index.html"),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
