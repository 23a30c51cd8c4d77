package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/app/controllers"
	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/middleware"
	"github.com/blogsphere/blogsphere/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	notificationController *controllers.NotificationController,
	tribeController *controllers.TribeController,
	analyticsController *controllers.AnalyticsController,
	adminController *controllers.AdminController,
	rssController *controllers.RSSController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// The RSS feed lives outside the API version group so feed readers
	// can fetch it from a stable root path
	router.GET("/rss.xml", rssController.Feed)

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Optionally authenticated routes ---
	// Anonymous viewers can browse; a valid token adds viewer-relative
	// flags such as likedByViewer and viewerIsMember.
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/posts", postController.Feed)
		public.GET("/posts/:id", postController.GetByID)
		public.GET("/posts/:id/comments", postController.ListComments)
		public.POST("/posts/:id/views", postController.RecordView)
		public.GET("/users/:username", userController.GetProfile)
		public.GET("/tribes", tribeController.List)
		public.GET("/notifications/push/public-key", notificationController.PushPublicKey)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.POST("/me/profile", userController.SetupProfile)
			users.PUT("/me", userController.UpdateProfile)
			users.PUT("/me/pin", userController.PinPost)
			users.DELETE("/me/pin", userController.UnpinPost)
			users.PUT("/:id/follow", userController.Follow)
			users.DELETE("/:id/follow", userController.Unfollow)
		}

		posts := authenticated.Group("/posts")
		{
			posts.POST("", postController.Create)
			posts.GET("/saved", postController.ListSaved)
			posts.PUT("/:id", postController.Update)
			posts.DELETE("/:id", postController.Delete)
			posts.PUT("/:id/like", postController.Like)
			posts.DELETE("/:id/like", postController.Unlike)
			posts.PUT("/:id/repost", postController.Repost)
			posts.DELETE("/:id/repost", postController.Unrepost)
			posts.PUT("/:id/bookmark", postController.Bookmark)
			posts.DELETE("/:id/bookmark", postController.Unbookmark)
			posts.POST("/:id/comments", postController.AddComment)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.DELETE("", notificationController.ClearAll)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.DELETE("/:id", notificationController.Delete)
			notifications.POST("/push/subscribe", notificationController.Subscribe)
		}

		tribes := authenticated.Group("/tribes")
		{
			tribes.POST("", tribeController.Create)
			tribes.GET("/mine", tribeController.ListMine)
			tribes.GET("/:id", tribeController.GetByID)
			tribes.PUT("/:id", tribeController.Update)
			tribes.DELETE("/:id", tribeController.Delete)
			tribes.POST("/:id/join", tribeController.Join)
			tribes.POST("/:id/leave", tribeController.Leave)
			tribes.GET("/:id/chat", tribeController.ChatHistory)
			tribes.POST("/:id/chat", tribeController.SendMessage)
			tribes.GET("/:id/chat/ws", wsHandler.HandleConnection)
		}

		authenticated.GET("/analytics/me", analyticsController.GetMine)

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/stats", adminController.Stats)
			admin.GET("/users", adminController.ListUsers)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.GET("/posts/pending", adminController.ListPendingPosts)
			admin.PUT("/posts/:id/moderate", adminController.ModeratePost)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
