package model

import "time"

// TargetKind 互动目标实体类型
type TargetKind string

const (
	TargetStartup TargetKind = "startup"
	TargetPost    TargetKind = "post"
	TargetReel    TargetKind = "reel"
)

// EngageKind 互动类型
type EngageKind string

const (
	EngageLike  EngageKind = "like"
	EngageCrown EngageKind = "crown"
	EngageShare EngageKind = "share"
)

// Engagement 互动记录，(target_kind, target_id, user_id, kind) 四元组唯一，
// 重复互动靠主键冲突去重
type Engagement struct {
	TargetKind TargetKind `gorm:"primaryKey;type:varchar(16)" json:"targetKind"`
	TargetID   uint64     `gorm:"primaryKey;index:idx_target" json:"targetId"`
	UserID     uint64     `gorm:"primaryKey;index:idx_user" json:"userId"`
	Kind       EngageKind `gorm:"primaryKey;type:varchar(16)" json:"kind"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (Engagement) TableName() string {
	return "engagements"
}
