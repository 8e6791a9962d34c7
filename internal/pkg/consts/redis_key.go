package consts

const (
	OtpCodeKey            = "otp:validate:code:"
	UserSummaryKey        = "user:summary:"
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	UserFollowDirtyKey    = "user:follow:dirty"
	EngageCountKey        = "engage:count:"
	EngageDirtyKey        = "engage:dirty"
	StartupHottestKey     = "startup:hottest:"
)

const (
	OtpSendLock      = "otp:send:lock:"
	AuthBlacklistKey = "auth:blacklist:"
)
