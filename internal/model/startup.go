package model

import "time"

// Startup 创业公司主页，计数快照直接挂在行上，由互动记录表对账
type Startup struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	OwnerID       uint64    `gorm:"not null;index:idx_owner_id" json:"ownerId"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Pitch         string    `gorm:"type:varchar(500)" json:"pitch"`
	LogoURL       string    `gorm:"type:varchar(255)" json:"logoUrl"`
	LaunchedAt    time.Time `json:"launchedAt"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likes"`
	CrownsCount   int64     `gorm:"not null;default:0" json:"crowns"`
	SharesCount   int64     `gorm:"not null;default:0" json:"shares"`
	CommentsCount int64     `gorm:"not null;default:0" json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Startup) TableName() string {
	return "startups"
}
