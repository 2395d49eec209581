package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gatherly-api/config"
	"gatherly-api/controllers"
	"gatherly-api/middleware"
	"gatherly-api/repositories"
	"gatherly-api/services"
)

// SetupCORS allows the browser client to talk to the API from another origin
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Data access + authorization engine
	activityRepo := repositories.NewActivityRepository(db)
	authz := services.NewAuthorizationService(activityRepo)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	activityController := controllers.NewActivityController(db, activityRepo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
	}

	// Listing is unrestricted read access
	v1.GET("/activities", activityController.GetActivities)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		activities := protected.Group("/activities")
		{
			activities.GET("/:id", activityController.GetActivity)
			activities.POST("", activityController.CreateActivity)

			// Only the host may mutate an existing activity. The gate is
			// attached per-route so a mutating route cannot ship unguarded.
			activities.PUT("/:id", middleware.RequireHost(authz), activityController.UpdateActivity)
			activities.DELETE("/:id", middleware.RequireHost(authz), activityController.DeleteActivity)

			activities.POST("/:id/attend", activityController.AttendActivity)
			activities.DELETE("/:id/attend", activityController.WithdrawActivity)
		}
	}
}
