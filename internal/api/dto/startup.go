package dto

import "time"

type CreateStartupReq struct {
	Name    string `json:"name" binding:"required,min=1,max=128"`
	Pitch   string `json:"pitch" binding:"required,max=2000"`
	LogoURL string `json:"logoUrl" binding:"omitempty,url"`
}

type StartupItem struct {
	ID            uint64    `json:"id"`
	OwnerID       uint64    `json:"ownerId"`
	Name          string    `json:"name"`
	Pitch         string    `json:"pitch"`
	LogoURL       string    `json:"logoUrl"`
	LaunchedAt    time.Time `json:"launchedAt"`
	LikesCount    int64     `json:"likes"`
	CrownsCount   int64     `json:"crowns"`
	SharesCount   int64     `json:"shares"`
	CommentsCount int64     `json:"comments"`
}

// HottestItem 热度榜条目，分数为窗口内加权互动量
type HottestItem struct {
	StartupItem
	Score int64 `json:"score"`
}

type SearchStartupReq struct {
	PageQuery
	Keyword string `form:"keyword" binding:"required,min=1,max=64"`
}
