package dto

import "time"

type CreateCommentReq struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

type CommentItem struct {
	ID        uint64    `json:"id"`
	StartupID uint64    `json:"startupId"`
	UserID    uint64    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentListResp struct {
	List  []*CommentItem `json:"list"`
	Total int64          `json:"total"`
}
