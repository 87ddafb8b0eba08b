package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPatronRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/token", c.AuthHandler.IssueToken)
	}
}

// ========================================
// PATRON ROUTES
// ========================================
func setupPatronRoutes(v1 *gin.RouterGroup, c *container.Container) {
	patrons := v1.Group("/patrons")
	{
		patrons.GET("", c.PersonHandler.List)
		patrons.GET("/:id", c.PersonHandler.GetByID)
	}

	// Librarian only
	librarian := patrons.Group("")
	librarian.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		librarian.POST("", c.PersonHandler.Create)
		librarian.PUT("/:id", c.PersonHandler.Update)
		librarian.DELETE("/:id", c.PersonHandler.Delete)
		librarian.POST("/:id/books", c.PersonHandler.BorrowBook)
		librarian.DELETE("/:id/books/:bookId", c.PersonHandler.ReturnBook)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		services := gin.H{}
		for name, err := range appCtx.HealthCheck(ctx) {
			if err != nil {
				services[name] = "error: " + err.Error()
				status = "degraded"
				continue
			}
			services[name] = "ok"
		}

		health := gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"storage":   appCtx.Config.Storage.Driver,
			"services":  services,
		}

		// storage down means the API cannot serve anything
		if services["storage"] != "ok" {
			response.ServiceUnavailable(c, health)
			return
		}
		response.Success(c, http.StatusOK, health)
	}
}
