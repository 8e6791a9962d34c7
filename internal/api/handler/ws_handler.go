package handler

import (
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/ws"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WsHandler struct {
	hub *ws.Hub
}

func NewWsHandler(hub *ws.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect 升级为长连接，用于未读数实时推送
func (h *WsHandler) Connect(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("ws upgrade failed", "userID", userID, "err", err)
		return
	}

	h.hub.Register(userID, conn)
	defer func() {
		h.hub.Unregister(userID, conn)
		_ = conn.Close()
	}()

	// 只收心跳，读到错误即视为断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
