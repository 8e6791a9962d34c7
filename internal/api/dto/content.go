package dto

import "time"

type CreatePostReq struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

type PostItem struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	LikesCount  int64     `json:"likes"`
	CrownsCount int64     `json:"crowns"`
	SharesCount int64     `json:"shares"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateReelReq struct {
	Caption  string `json:"caption" binding:"required,min=1,max=500"`
	VideoURL string `json:"videoUrl" binding:"required,url"`
}

type ReelItem struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	Caption     string    `json:"caption"`
	VideoURL    string    `json:"videoUrl"`
	LikesCount  int64     `json:"likes"`
	CrownsCount int64     `json:"crowns"`
	SharesCount int64     `json:"shares"`
	CreatedAt   time.Time `json:"createdAt"`
}
