package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyilmaz/campushub/internal/app/controllers"
	"github.com/dyilmaz/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	clubController *controllers.ClubController,
	eventController *controllers.EventController,
	commentController *controllers.CommentController,
	notificationController *controllers.NotificationController,
	userController *controllers.UserController,
	adminController *controllers.AdminController,
	weatherController *controllers.WeatherController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	v1.GET("/clubs", clubController.List)
	// Club detail personalizes roster visibility when a token is
	// present but stays open to anonymous viewers.
	v1.GET("/clubs/:id", authMiddleware.OptionalJWTAuth(), clubController.GetDetails)
	v1.GET("/events", eventController.List)
	// Event detail personalizes its response when a token is present
	// but stays open to anonymous viewers.
	v1.GET("/events/:id", authMiddleware.OptionalJWTAuth(), eventController.GetDetail)
	v1.GET("/events/:id/comments", commentController.List)
	v1.GET("/weather", weatherController.Get)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		clubs := authenticated.Group("/clubs")
		{
			clubs.POST("", clubController.Create)
			clubs.GET("/my-clubs", clubController.GetMine)
			clubs.POST("/:id/follow", clubController.Follow)
			clubs.POST("/:id/leave", clubController.Leave)
			clubs.POST("/:id/remove-member", clubController.RemoveMember)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.Create)
			events.PUT("/:id", eventController.Update)
			events.DELETE("/:id", eventController.Delete)
			events.POST("/:id/join", eventController.Join)
			events.POST("/:id/leave", eventController.Leave)
			events.GET("/:id/participants", eventController.ListParticipants)
			events.POST("/:id/remove-participant", eventController.RemoveParticipant)
			events.POST("/:id/comments", commentController.Add)
		}

		authenticated.DELETE("/comments/:id", commentController.Delete)

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}

		users := authenticated.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/history", userController.GetHistory)
		}

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/ban", adminController.ToggleBan)
			admin.PUT("/users/:id/role", adminController.UpdateRole)
			admin.DELETE("/comments/:id", adminController.DeleteComment)
			admin.POST("/announce", adminController.Announce)
			admin.PUT("/clubs/:id", clubController.ForceUpdate)
			admin.PUT("/clubs/:id/approve", clubController.Approve)
			admin.DELETE("/clubs/:id", clubController.Delete)
		}
	}
}
