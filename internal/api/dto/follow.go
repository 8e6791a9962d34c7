package dto

// FollowUserItem 关注/粉丝列表条目
type FollowUserItem struct {
	UserSummary
	FollowedAt int64 `json:"followedAt"`
}

type FollowListResp struct {
	List  []*FollowUserItem `json:"list"`
	Total int64             `json:"total"`
}

type FollowCountResp struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
