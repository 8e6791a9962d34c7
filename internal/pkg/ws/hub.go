package ws

import (
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Hub 维护在线用户的通知推送连接
type Hub struct {
	mu    sync.RWMutex
	conns map[uint64][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uint64][]*websocket.Conn)}
}

// Register 注册连接
func (h *Hub) Register(userID uint64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], conn)
}

// Unregister 移除连接
func (h *Hub) Unregister(userID uint64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.conns[userID]
	for i, c := range list {
		if c == conn {
			h.conns[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// PushUnread 推送未读数，用户离线时静默丢弃
func (h *Hub) PushUnread(userID uint64, unreadCount int64) {
	h.mu.RLock()
	list := make([]*websocket.Conn, len(h.conns[userID]))
	copy(list, h.conns[userID])
	h.mu.RUnlock()

	if len(list) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"type":        "unread",
		"unreadCount": unreadCount,
	})
	if err != nil {
		return
	}

	for _, conn := range list {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn("ws push failed", "userID", userID, "err", err)
		}
	}
}
