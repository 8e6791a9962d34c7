package api

import (
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter 装配路由
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	logger.SetupGin(r)
	r.Use(middleware.Cors(), middleware.Trace())

	root := r.Group("/api")

	auth := root.Group("/auth")
	{
		auth.POST("/code", h.User.SendCode)
		auth.POST("/register", h.User.Register)
		auth.POST("/login", h.User.Login)
		auth.POST("/logout", middleware.Auth(), h.User.Logout)
	}

	users := root.Group("/users")
	{
		users.GET("/:user_id", h.User.GetUserSummary)
		users.GET("/:user_id/following", h.Follow.GetFollowingList)
		users.GET("/:user_id/followers", h.Follow.GetFollowerList)
		users.GET("/:user_id/follows/counts", h.Follow.GetFollowCounts)
		users.GET("/:user_id/posts", h.Content.GetPostList)
		users.GET("/:user_id/reels", h.Content.GetReelList)

		users.PUT("/avatar", middleware.Auth(), h.User.UpdateAvatar)
	}

	follows := root.Group("/follows", middleware.Auth())
	{
		follows.POST("/:user_id", h.Follow.Follow)
		follows.DELETE("/:user_id", h.Follow.Unfollow)
		follows.GET("/check/:user_id", h.Follow.CheckFollow)
	}

	engagements := root.Group("/engagements", middleware.Auth())
	{
		engagements.POST("/flags", h.Engagement.GetFlags)
		engagements.POST("/:target_kind/:target_id/:kind", h.Engagement.Engage)
		engagements.DELETE("/:target_kind/:target_id/:kind", h.Engagement.Disengage)
	}

	notifications := root.Group("/notifications", middleware.Auth())
	{
		notifications.GET("", h.Notification.GetList)
		notifications.GET("/unread-count", h.Notification.GetUnreadCount)
		notifications.PUT("/read-all", h.Notification.MarkAllAsRead)
		notifications.PUT("/:notification_id/read", h.Notification.MarkAsRead)
	}

	startups := root.Group("/startups")
	{
		startups.GET("/hottest", h.Startup.Hottest)
		startups.GET("/search", h.Startup.Search)
		startups.GET("/:startup_id", h.Startup.Get)
		startups.GET("/:startup_id/comments", h.Comment.GetList)

		startups.POST("", middleware.Auth(), middleware.CheckRole(consts.RoleStartup, consts.RoleAdmin), h.Startup.Create)
		startups.DELETE("/:startup_id", middleware.Auth(), h.Startup.Delete)
		startups.POST("/:startup_id/comments", middleware.Auth(), h.Comment.Create)
	}

	root.DELETE("/comments/:comment_id", middleware.Auth(), h.Comment.Delete)

	posts := root.Group("/posts")
	{
		posts.GET("/:post_id", h.Content.GetPost)
		posts.POST("", middleware.Auth(), h.Content.CreatePost)
	}

	reels := root.Group("/reels")
	{
		reels.GET("/:reel_id", h.Content.GetReel)
		reels.POST("", middleware.Auth(), h.Content.CreateReel)
	}

	root.POST("/media/images", middleware.Auth(), h.Media.UploadImage)
	root.GET("/ws", middleware.Auth(), h.Ws.Connect)

	admin := root.Group("/admin", middleware.Auth(), middleware.CheckRole(consts.RoleAdmin))
	{
		admin.POST("/roles/grant", h.User.GrantRole)
		admin.POST("/roles/revoke", h.User.RevokeRole)
	}

	return r
}
