package dto

// EngageURI 互动路径参数：/:target_kind/:target_id/:kind
type EngageURI struct {
	TargetKind string `uri:"target_kind" binding:"required,oneof=startup post reel"`
	TargetID   uint64 `uri:"target_id" binding:"required"`
	Kind       string `uri:"kind" binding:"required,oneof=like crown share"`
}

// EngageResp 互动后的最新计数快照
type EngageResp struct {
	Engaged bool  `json:"engaged"`
	Count   int64 `json:"count"`
}

type EngagementFlagsReq struct {
	TargetKind string   `json:"targetKind" binding:"required,oneof=startup post reel"`
	TargetIDs  []uint64 `json:"targetIds" binding:"required,min=1,max=100"`
}

// EngagementFlags 当前用户对单个目标的互动标记
type EngagementFlags struct {
	Liked          bool `json:"liked"`
	Crowned        bool `json:"crowned"`
	Shared         bool `json:"shared"`
	FollowingOwner bool `json:"followingOwner"`
}

type EngagementFlagsResp struct {
	Flags map[uint64]*EngagementFlags `json:"flags"`
}
