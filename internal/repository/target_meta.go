package repository

import (
	"Atmosphere/internal/model"
)

// targetMeta 描述一种互动目标的表结构：计数快照列内嵌在目标行上
type targetMeta struct {
	table    string
	ownerCol string
	counters map[model.EngageKind]string
}

var targetMetas = map[model.TargetKind]targetMeta{
	model.TargetStartup: {
		table:    "startups",
		ownerCol: "owner_id",
		counters: map[model.EngageKind]string{
			model.EngageLike:  "likes_count",
			model.EngageCrown: "crowns_count",
			model.EngageShare: "shares_count",
		},
	},
	model.TargetPost: {
		table:    "posts",
		ownerCol: "user_id",
		counters: map[model.EngageKind]string{
			model.EngageLike:  "likes_count",
			model.EngageCrown: "crowns_count",
			model.EngageShare: "shares_count",
		},
	},
	model.TargetReel: {
		table:    "reels",
		ownerCol: "user_id",
		counters: map[model.EngageKind]string{
			model.EngageLike:  "likes_count",
			model.EngageCrown: "crowns_count",
			model.EngageShare: "shares_count",
		},
	},
}

func metaFor(kind model.TargetKind) (targetMeta, bool) {
	meta, ok := targetMetas[kind]
	return meta, ok
}
