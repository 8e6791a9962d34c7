package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/mongo"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	engageTimeout  = 3 * time.Second
	engageCountTTL = 10 * time.Minute
)

type EngagementService interface {
	Engage(ctx context.Context, userID uint64, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (*dto.EngageResp, error)
	Disengage(ctx context.Context, userID uint64, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (*dto.EngageResp, error)
	GetEngagementFlags(ctx context.Context, userID uint64, targetKind model.TargetKind, targetIDs []uint64) (*dto.EngagementFlagsResp, error)
}

type EngagementServiceImpl struct {
	engagementRepo repository.EngagementRepo
	targetRepo     repository.TargetRepo
	userRolesRepo  repository.UserRolesRepo
	followRepo     repository.UserFollowRepo
	notifier       *Notifier
}

func NewEngagementService(
	engagementRepo repository.EngagementRepo,
	targetRepo repository.TargetRepo,
	userRolesRepo repository.UserRolesRepo,
	followRepo repository.UserFollowRepo,
	notifier *Notifier,
) EngagementService {
	return &EngagementServiceImpl{
		engagementRepo: engagementRepo,
		targetRepo:     targetRepo,
		userRolesRepo:  userRolesRepo,
		followRepo:     followRepo,
		notifier:       notifier,
	}
}

var notifyTypeOf = map[model.EngageKind]int8{
	model.EngageLike:  mongo.NotifyTypeLike,
	model.EngageCrown: mongo.NotifyTypeCrown,
	model.EngageShare: mongo.NotifyTypeShare,
}

var notifyContentOf = map[model.EngageKind]string{
	model.EngageLike:  "赞了你的内容",
	model.EngageCrown: "为你送上了一枚皇冠",
	model.EngageShare: "转发了你的内容",
}

// Engage 发起互动。重复互动吸收为幂等成功；事务不可用时降级为
// 先写记录再补计数，绝不因事务失败拒绝请求。
func (s *EngagementServiceImpl) Engage(ctx context.Context, userID uint64, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (*dto.EngageResp, error) {
	ctx, cancel := context.WithTimeout(ctx, engageTimeout)
	defer cancel()

	if kind == model.EngageCrown {
		isInvestor, err := s.userRolesRepo.HasRoleCode(ctx, userID, consts.RoleInvestor)
		if err != nil {
			return nil, err
		}
		if !isInvestor {
			return nil, ErrCrownForbidden
		}
	}

	ownerID, found, err := s.targetRepo.OwnerID(ctx, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTargetNotFound
	}

	exists, err := s.engagementRepo.Exists(ctx, targetKind, targetID, userID, kind)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.respond(ctx, targetKind, targetID, kind, true)
	}

	rec := &model.Engagement{
		TargetKind: targetKind,
		TargetID:   targetID,
		UserID:     userID,
		Kind:       kind,
	}

	created := true
	if err = s.engagementRepo.CreateWithCounter(ctx, rec); err != nil {
		switch {
		case isDuplicateError(err):
			// 并发下输给另一次相同互动，视为已成功
			created = false
		default:
			log.Warn("engage tx failed, falling back to sequential writes",
				"targetKind", targetKind, "targetID", targetID, "kind", kind, "err", err)
			created, err = s.engageSequential(ctx, rec)
			if err != nil {
				return nil, err
			}
		}
	}

	s.markDirty(ctx, targetKind, targetID)

	if created {
		s.notifier.Push(ctx, &mongo.Notification{
			ReceiverID: ownerID,
			SenderID:   userID,
			Type:       notifyTypeOf[kind],
			TargetKind: string(targetKind),
			TargetID:   targetID,
			Content:    notifyContentOf[kind],
		})
	}

	return s.respond(ctx, targetKind, targetID, kind, true)
}

// engageSequential 降级路径：记录先行，计数补偿，计数失败交给对账兜底
func (s *EngagementServiceImpl) engageSequential(ctx context.Context, rec *model.Engagement) (bool, error) {
	if err := s.engagementRepo.Create(ctx, rec); err != nil {
		if isDuplicateError(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.engagementRepo.IncrSnapshot(ctx, rec.TargetKind, rec.TargetID, rec.Kind, 1); err != nil {
		log.Error("incr counter after fallback insert failed",
			"targetKind", rec.TargetKind, "targetID", rec.TargetID, "kind", rec.Kind, "err", err)
	}
	return true, nil
}

// Disengage 撤销互动。撤销不存在的互动是空操作，同样返回当前计数。
func (s *EngagementServiceImpl) Disengage(ctx context.Context, userID uint64, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (*dto.EngageResp, error) {
	ctx, cancel := context.WithTimeout(ctx, engageTimeout)
	defer cancel()

	_, found, err := s.targetRepo.OwnerID(ctx, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTargetNotFound
	}

	rec := &model.Engagement{
		TargetKind: targetKind,
		TargetID:   targetID,
		UserID:     userID,
		Kind:       kind,
	}

	deleted, err := s.engagementRepo.DeleteWithCounter(ctx, rec)
	if err != nil {
		log.Warn("disengage tx failed, falling back to sequential writes",
			"targetKind", targetKind, "targetID", targetID, "kind", kind, "err", err)
		deleted, err = s.engagementRepo.Delete(ctx, rec)
		if err != nil {
			return nil, err
		}
		if deleted {
			if err = s.engagementRepo.IncrSnapshot(ctx, targetKind, targetID, kind, -1); err != nil {
				log.Error("decr counter after fallback delete failed",
					"targetKind", targetKind, "targetID", targetID, "kind", kind, "err", err)
			}
		}
	}

	if deleted {
		s.markDirty(ctx, targetKind, targetID)
	}
	return s.respond(ctx, targetKind, targetID, kind, false)
}

// GetEngagementFlags 批量返回当前用户对一组目标的互动标记和与目标主人的关注关系，
// 固定几条批量查询，不按目标逐条查
func (s *EngagementServiceImpl) GetEngagementFlags(ctx context.Context, userID uint64, targetKind model.TargetKind, targetIDs []uint64) (*dto.EngagementFlagsResp, error) {
	var (
		liked, crowned, shared []uint64
		owners                 map[uint64]uint64
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		liked, err = s.engagementRepo.ListEngagedTargetIDs(egCtx, userID, targetKind, model.EngageLike, targetIDs)
		return err
	})
	eg.Go(func() error {
		var err error
		crowned, err = s.engagementRepo.ListEngagedTargetIDs(egCtx, userID, targetKind, model.EngageCrown, targetIDs)
		return err
	})
	eg.Go(func() error {
		var err error
		shared, err = s.engagementRepo.ListEngagedTargetIDs(egCtx, userID, targetKind, model.EngageShare, targetIDs)
		return err
	})
	eg.Go(func() error {
		var err error
		owners, err = s.targetRepo.OwnersByIDs(egCtx, targetKind, targetIDs)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ownerIDs := make([]uint64, 0, len(owners))
	seen := make(map[uint64]struct{}, len(owners))
	for _, ownerID := range owners {
		if _, ok := seen[ownerID]; ok {
			continue
		}
		seen[ownerID] = struct{}{}
		ownerIDs = append(ownerIDs, ownerID)
	}
	followedOwners, err := s.followRepo.ListFollowingAmong(ctx, userID, ownerIDs)
	if err != nil {
		return nil, err
	}
	followed := make(map[uint64]struct{}, len(followedOwners))
	for _, ownerID := range followedOwners {
		followed[ownerID] = struct{}{}
	}

	flags := make(map[uint64]*dto.EngagementFlags, len(targetIDs))
	for _, id := range targetIDs {
		flags[id] = &dto.EngagementFlags{}
	}
	for _, id := range liked {
		flags[id].Liked = true
	}
	for _, id := range crowned {
		flags[id].Crowned = true
	}
	for _, id := range shared {
		flags[id].Shared = true
	}
	for id, ownerID := range owners {
		if _, ok := followed[ownerID]; ok {
			flags[id].FollowingOwner = true
		}
	}
	return &dto.EngagementFlagsResp{Flags: flags}, nil
}

// respond 读取权威快照返回，并顺手刷新计数缓存
func (s *EngagementServiceImpl) respond(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, engaged bool) (*dto.EngageResp, error) {
	count, err := s.engagementRepo.GetSnapshot(ctx, targetKind, targetID, kind)
	if err != nil {
		return nil, err
	}

	key := engageCountKey(targetKind, targetID, kind)
	if err = redis.SetWithExpiration(ctx, key, count, engageCountTTL); err != nil {
		log.Warn("refresh engage count cache failed", "key", key, "err", err)
	}

	return &dto.EngageResp{Engaged: engaged, Count: count}, nil
}

// markDirty 把目标挂入脏集合，等对账任务重算计数
func (s *EngagementServiceImpl) markDirty(ctx context.Context, targetKind model.TargetKind, targetID uint64) {
	member := fmt.Sprintf("%s:%d", targetKind, targetID)
	if err := redis.SAdd(ctx, consts.EngageDirtyKey, member); err != nil {
		log.Warn("mark engage dirty failed", "member", member, "err", err)
	}
}

func engageCountKey(targetKind model.TargetKind, targetID uint64, kind model.EngageKind) string {
	return fmt.Sprintf("%s%s:%d:%s", consts.EngageCountKey, targetKind, targetID, kind)
}
