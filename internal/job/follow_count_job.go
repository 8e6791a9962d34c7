package job

import (
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/logger"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/pkg/util"
	"Atmosphere/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const followCountCacheTTL = time.Hour

// FollowCountJob 把脏用户的关注/粉丝计数缓存重置为 DB 真实值
type FollowCountJob struct {
	followRepo repository.UserFollowRepo
}

func NewFollowCountJob(followRepo repository.UserFollowRepo) *FollowCountJob {
	return &FollowCountJob{followRepo: followRepo}
}

func (s *FollowCountJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID) //nolint:staticcheck

	processingKey := consts.UserFollowDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.UserFollowDirtyKey, processingKey); err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert set to int slice error", "err", err)
		return
	}

	for _, userID := range userIDs {
		idStr := strconv.FormatUint(userID, 10)

		followers, err := s.followRepo.CountFollowers(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "count followers error", "userID", userID, "err", err)
			continue
		}
		following, err := s.followRepo.CountFollowing(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "count following error", "userID", userID, "err", err)
			continue
		}

		if err = redis.SetWithExpiration(ctx, consts.UserFollowerCountKey+idStr, followers, followCountCacheTTL); err != nil {
			log.ErrorContext(ctx, "reset follower count cache error", "userID", userID, "err", err)
		}
		if err = redis.SetWithExpiration(ctx, consts.UserFollowingCountKey+idStr, following, followCountCacheTTL); err != nil {
			log.ErrorContext(ctx, "reset following count cache error", "userID", userID, "err", err)
		}
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete dirty set error", "err", err)
	}

	log.InfoContext(ctx, "follow count reconcile finished", "users", len(userIDs))
}
