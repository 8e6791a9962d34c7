package api

import "Atmosphere/internal/api/handler"

// Handlers 汇总所有 HTTP 处理器，由依赖容器装配
type Handlers struct {
	User         *handler.UserHandler
	Follow       *handler.FollowHandler
	Engagement   *handler.EngagementHandler
	Notification *handler.NotificationHandler
	Startup      *handler.StartupHandler
	Comment      *handler.CommentHandler
	Content      *handler.ContentHandler
	Media        *handler.MediaHandler
	Ws           *handler.WsHandler
}
