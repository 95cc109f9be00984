package routes

import (
	"time"

	"skillswap/handlers"
	"skillswap/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes registers profile and calendar endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/register", hb.RegisterProfile)
		api.GET("/me", hb.GetMyProfile)
		api.GET("/:uid", hb.GetPublicProfile)
		api.PATCH("/me", hb.UpdateMyProfile)
		api.DELETE("/me", hb.DeleteMyProfile)

		api.POST("/calendar/token", hb.StoreCalendarToken)
		api.POST("/calendar/sync", hb.SyncCalendar)
	}
}

// RegisterMatchingRoutes registers mentor discovery endpoints.
func RegisterMatchingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/matches")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.FindMatches)
		api.POST("/deny", hb.DenyMentor)
		api.GET("/mentor/:uid", hb.GetMentorProfile)
	}
}

// RegisterSessionRoutes registers booking and rating endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/book", hb.BookSession)
		api.GET("", hb.ListMySessions)
		api.DELETE("/:sessionID", hb.CancelSession)
		api.POST("/rate", hb.RateSession)
	}
}

// RegisterAdminRoutes registers admin analytics endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		api.GET("/stats", hb.GetPlatformStats)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterProfileRoutes(r, hb)
	RegisterMatchingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
