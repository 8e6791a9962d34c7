package model

import "time"

type Reel struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_reel_user_id" json:"userId"`
	Caption     string    `gorm:"type:varchar(500)" json:"caption"`
	VideoURL    string    `gorm:"type:varchar(255)" json:"videoUrl"`
	LikesCount  int64     `gorm:"not null;default:0" json:"likes"`
	CrownsCount int64     `gorm:"not null;default:0" json:"crowns"`
	SharesCount int64     `gorm:"not null;default:0" json:"shares"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Reel) TableName() string {
	return "reels"
}
