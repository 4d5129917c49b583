package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-web-services/metrics"
)

// RegisterShortenerRoutes sets up all the routes for the URL shortener
// service, applying CORS and metrics middleware to every route.
func RegisterShortenerRoutes(r *gin.Engine, handler URLHandlerInterface) {
	r.Use(CORSMiddleware())
	r.Use(metrics.Middleware("shortener"))

	api := r.Group("/api")
	{
		api.POST("/shorten", handler.CreateShortURL)
		api.GET("/stats/:code", handler.Stats)
	}

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Redirection route is user-facing and lives at the root
	r.GET("/:code", handler.Redirect)
}

// RegisterUserRoutes sets up all the routes for the user management service.
func RegisterUserRoutes(r *gin.Engine, handler UserHandlerInterface) {
	r.Use(CORSMiddleware())
	r.Use(metrics.Middleware("userapi"))

	r.GET("/", handler.Home)
	r.GET("/users", handler.ListUsers)
	r.POST("/users", handler.CreateUser)
	r.GET("/user/:id", handler.GetUser)
	r.PUT("/user/:id", handler.UpdateUser)
	r.DELETE("/user/:id", handler.DeleteUser)
	r.GET("/search", handler.SearchUsers)
	r.POST("/login", handler.Login)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
