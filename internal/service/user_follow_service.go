package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	maxFollowing       = 1000
	followCacheTTL     = time.Hour
	followBackfillSize = 1000
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) error
	Unfollow(ctx context.Context, followerID, followingID uint64) error
	GetFollowingList(ctx context.Context, userID uint64, page *dto.PageQuery) (*dto.FollowListResp, error)
	GetFollowerList(ctx context.Context, userID uint64, page *dto.PageQuery) (*dto.FollowListResp, error)
	GetFollowCounts(ctx context.Context, userID uint64) (*dto.FollowCountResp, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	ListFollowingAmong(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error)
}

type UserFollowServiceImpl struct {
	followRepo  repository.UserFollowRepo
	userRepo    repository.UserRepo
	userService UserService
}

func NewUserFollowService(
	followRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	userService UserService,
) UserFollowService {
	return &UserFollowServiceImpl{
		followRepo:  followRepo,
		userRepo:    userRepo,
		userService: userService,
	}
}

// Follow 关注，重复关注报业务冲突，缓存由 binlog 消费端维护
func (s *UserFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	exists, err := s.userRepo.ExistsByID(ctx, followingID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	count, err := s.followRepo.CountFollowing(ctx, followerID)
	if err != nil {
		return err
	}
	if count >= maxFollowing {
		return ErrFollowLimit
	}

	err = s.followRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrFollowDuplicate
		}
		return err
	}
	return nil
}

// Unfollow 取关，未关注过报 404
func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) error {
	deleted, err := s.followRepo.DeleteUserFollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFollowNotFound
	}
	return nil
}

func (s *UserFollowServiceImpl) GetFollowingList(ctx context.Context, userID uint64, page *dto.PageQuery) (*dto.FollowListResp, error) {
	key := consts.UserFollowingKey + strconv.FormatUint(userID, 10)
	resp, err := s.listFromCache(ctx, key, page)
	if err == nil && resp != nil {
		return resp, nil
	}

	list, err := s.followRepo.GetFollowingList(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	go s.backfillFollowingCache(context.WithoutCancel(ctx), userID)

	ids := make([]uint64, 0, len(list))
	ats := make([]int64, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.FollowingID)
		ats = append(ats, f.CreatedAt.Unix())
	}
	return s.assemble(ctx, ids, ats, total)
}

func (s *UserFollowServiceImpl) GetFollowerList(ctx context.Context, userID uint64, page *dto.PageQuery) (*dto.FollowListResp, error) {
	key := consts.UserFollowerKey + strconv.FormatUint(userID, 10)
	resp, err := s.listFromCache(ctx, key, page)
	if err == nil && resp != nil {
		return resp, nil
	}

	list, err := s.followRepo.GetFollowerList(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	go s.backfillFollowerCache(context.WithoutCancel(ctx), userID)

	ids := make([]uint64, 0, len(list))
	ats := make([]int64, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.FollowerID)
		ats = append(ats, f.CreatedAt.Unix())
	}
	return s.assemble(ctx, ids, ats, total)
}

// GetFollowCounts 计数走 redis，未命中回源计数并回填
func (s *UserFollowServiceImpl) GetFollowCounts(ctx context.Context, userID uint64) (*dto.FollowCountResp, error) {
	idStr := strconv.FormatUint(userID, 10)

	followers, err := s.countWithCache(ctx, consts.UserFollowerCountKey+idStr, func() (int64, error) {
		return s.followRepo.CountFollowers(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	following, err := s.countWithCache(ctx, consts.UserFollowingCountKey+idStr, func() (int64, error) {
		return s.followRepo.CountFollowing(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.FollowCountResp{Followers: followers, Following: following}, nil
}

// IsFollowing 存在性检查，只用于渲染视角状态，不做权限判断
func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	return s.followRepo.ExistsUserFollow(ctx, followerID, followingID)
}

func (s *UserFollowServiceImpl) ListFollowingAmong(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	return s.followRepo.ListFollowingAmong(ctx, followerID, candidateIDs)
}

// listFromCache 缓存命中时直接用 ZSET 分页，成员为用户 ID、分数为关注时间
func (s *UserFollowServiceImpl) listFromCache(ctx context.Context, key string, page *dto.PageQuery) (*dto.FollowListResp, error) {
	exists, err := redis.Exists(ctx, key)
	if err != nil || !exists {
		return nil, err
	}

	start := int64(page.Offset())
	stop := start + int64(page.Size) - 1
	zs, err := redis.ZRevRangeWithScores(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	total, err := redis.ZCard(ctx, key)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(zs))
	ats := make([]int64, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, nil
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			return nil, nil
		}
		ids = append(ids, id)
		ats = append(ats, int64(z.Score))
	}
	return s.assemble(ctx, ids, ats, total)
}

func (s *UserFollowServiceImpl) assemble(ctx context.Context, ids []uint64, followedAts []int64, total int64) (*dto.FollowListResp, error) {
	summaries, err := s.userService.GetUserSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.FollowUserItem, 0, len(ids))
	for i, id := range ids {
		summary, ok := summaries[id]
		if !ok {
			// 目标用户已注销，列表里跳过
			continue
		}
		items = append(items, &dto.FollowUserItem{
			UserSummary: *summary,
			FollowedAt:  followedAts[i],
		})
	}
	return &dto.FollowListResp{List: items, Total: total}, nil
}

func (s *UserFollowServiceImpl) countWithCache(ctx context.Context, key string, load func() (int64, error)) (int64, error) {
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, goredis.Nil) {
		log.Warn("read follow count cache failed", "key", key, "err", err)
	}

	count, err = load()
	if err != nil {
		return 0, err
	}
	if err = redis.SetWithExpiration(ctx, key, count, followCacheTTL); err != nil {
		log.Warn("backfill follow count cache failed", "key", key, "err", err)
	}
	return count, nil
}

func (s *UserFollowServiceImpl) backfillFollowingCache(ctx context.Context, userID uint64) {
	key := consts.UserFollowingKey + strconv.FormatUint(userID, 10)
	list, err := s.followRepo.GetFollowingList(ctx, userID, followBackfillSize, 0)
	if err != nil {
		log.Warn("backfill following cache failed", "userID", userID, "err", err)
		return
	}
	for _, f := range list {
		_ = redis.ZAdd(ctx, key, float64(f.CreatedAt.Unix()), strconv.FormatUint(f.FollowingID, 10))
	}
	_ = redis.Expire(ctx, key, followCacheTTL)
}

func (s *UserFollowServiceImpl) backfillFollowerCache(ctx context.Context, userID uint64) {
	key := consts.UserFollowerKey + strconv.FormatUint(userID, 10)
	list, err := s.followRepo.GetFollowerList(ctx, userID, followBackfillSize, 0)
	if err != nil {
		log.Warn("backfill follower cache failed", "userID", userID, "err", err)
		return
	}
	for _, f := range list {
		_ = redis.ZAdd(ctx, key, float64(f.CreatedAt.Unix()), strconv.FormatUint(f.FollowerID, 10))
	}
	_ = redis.Expire(ctx, key, followCacheTTL)
}
