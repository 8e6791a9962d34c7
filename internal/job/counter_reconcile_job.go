package job

import (
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/logger"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CounterReconcileJob 对账任务：把脏目标的计数快照重置为互动记录的真实计数。
// 降级写入或消费链路丢失造成的漂移都由这里收敛。
type CounterReconcileJob struct {
	engagementRepo repository.EngagementRepo
	commentRepo    repository.CommentRepo
	startupRepo    repository.StartupRepo
}

func NewCounterReconcileJob(
	engagementRepo repository.EngagementRepo,
	commentRepo repository.CommentRepo,
	startupRepo repository.StartupRepo,
) *CounterReconcileJob {
	return &CounterReconcileJob{
		engagementRepo: engagementRepo,
		commentRepo:    commentRepo,
		startupRepo:    startupRepo,
	}
}

func (s *CounterReconcileJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID) //nolint:staticcheck

	processingKey := consts.EngageDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.EngageDirtyKey, processingKey); err != nil {
		// 脏集合为空时直接跳过本轮
		return
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "err", err)
		return
	}

	for _, member := range members {
		targetKind, targetID, ok := parseDirtyMember(member)
		if !ok {
			log.WarnContext(ctx, "skip malformed dirty member", "member", member)
			continue
		}
		if err = s.reconcileTarget(ctx, targetKind, targetID); err != nil {
			log.ErrorContext(ctx, "reconcile target error",
				"targetKind", targetKind, "targetID", targetID, "err", err)
		}
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete dirty set error", "err", err)
	}

	log.InfoContext(ctx, "counter reconcile finished", "targets", len(members))
}

// reconcileTarget 逐个计数列重算，评论计数只有 startup 有
func (s *CounterReconcileJob) reconcileTarget(ctx context.Context, targetKind model.TargetKind, targetID uint64) error {
	for _, kind := range []model.EngageKind{model.EngageLike, model.EngageCrown, model.EngageShare} {
		truth, err := s.engagementRepo.CountByTarget(ctx, targetKind, targetID, kind)
		if err != nil {
			return err
		}
		if err = s.engagementRepo.SetSnapshot(ctx, targetKind, targetID, kind, truth); err != nil {
			return err
		}
	}

	if targetKind == model.TargetStartup {
		truth, err := s.commentRepo.CountByStartup(ctx, targetID)
		if err != nil {
			return err
		}
		if err = s.startupRepo.SetCommentsCount(ctx, targetID, truth); err != nil {
			return err
		}
	}
	return nil
}

// parseDirtyMember 解析 "targetKind:targetID" 形式的脏集合成员
func parseDirtyMember(member string) (model.TargetKind, uint64, bool) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return model.TargetKind(parts[0]), id, true
}
