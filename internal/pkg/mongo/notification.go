package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotifyTypeLike    int8 = 1 // 点赞
	NotifyTypeCrown   int8 = 2 // 加冕
	NotifyTypeShare   int8 = 3 // 转发
	NotifyTypeComment int8 = 4 // 评论
)

// Notification 通知模型
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 消息接收者ID
	SenderID   uint64             `bson:"sender_id" json:"senderId"`     // 动作发起者ID (系统通知可为0)
	Type       int8               `bson:"type" json:"type"`
	TargetKind string             `bson:"target_kind" json:"targetKind"` // 关联目标类型 (startup/post/reel)
	TargetID   uint64             `bson:"target_id" json:"targetId"`     // 关联的目标ID
	Content    string             `bson:"content" json:"content"`        // 通知文案预览
	Payload    map[string]any     `bson:"payload" json:"payload"`        // 额外元数据
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
