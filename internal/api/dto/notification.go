package dto

import "time"

type NotificationItem struct {
	ID         string         `json:"id"`
	SenderID   uint64         `json:"senderId"`
	Type       int8           `json:"type"`
	TargetKind string         `json:"targetKind"`
	TargetID   uint64         `json:"targetId"`
	Content    string         `json:"content"`
	Payload    map[string]any `json:"payload,omitempty"`
	IsRead     bool           `json:"isRead"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type NotificationListReq struct {
	PageQuery
	UnreadOnly bool `form:"unreadOnly"`
}

type NotificationListResp struct {
	List        []*NotificationItem `json:"list"`
	UnreadCount int64               `json:"unreadCount"`
}
