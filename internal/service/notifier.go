package service

import (
	"Atmosphere/internal/pkg/mongo"
	"Atmosphere/internal/pkg/ws"
	"context"
	log "log/slog"
	"time"
)

// Notifier 互动通知落库并推送未读数，全程尽力而为，失败不影响主流程
type Notifier struct {
	repo mongo.NotificationRepo
	hub  *ws.Hub
}

func NewNotifier(repo mongo.NotificationRepo, hub *ws.Hub) *Notifier {
	return &Notifier{repo: repo, hub: hub}
}

func (n *Notifier) Push(ctx context.Context, msg *mongo.Notification) {
	if msg.ReceiverID == msg.SenderID {
		return
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if err := n.repo.CreateNotification(ctx, msg); err != nil {
		log.Error("create notification failed",
			"receiverID", msg.ReceiverID, "type", msg.Type, "err", err)
		return
	}

	unread, err := n.repo.GetUnreadCount(ctx, msg.ReceiverID)
	if err != nil {
		log.Warn("count unread failed", "receiverID", msg.ReceiverID, "err", err)
		return
	}
	n.hub.PushUnread(msg.ReceiverID, unread)
}
