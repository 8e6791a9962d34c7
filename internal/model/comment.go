package model

import "time"

// Comment 创业公司主页下的评论，参与热度分计算
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	StartupID uint64    `gorm:"not null;index:idx_startup_id" json:"startupId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	IsDeleted bool      `gorm:"type:tinyint(1);default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "startup_comments"
}
