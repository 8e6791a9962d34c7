package model

import "time"

type Post struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	Content     string    `gorm:"type:text" json:"content"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"imageUrl"`
	LikesCount  int64     `gorm:"not null;default:0" json:"likes"`
	CrownsCount int64     `gorm:"not null;default:0" json:"crowns"`
	SharesCount int64     `gorm:"not null;default:0" json:"shares"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}
