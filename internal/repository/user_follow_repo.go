package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	CreateUserFollow(ctx context.Context, follow *model.UserFollow) error
	DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error)
	ExistsUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowingList(ctx context.Context, followerID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetFollowerList(ctx context.Context, followingID uint64, limit, offset int) ([]*model.UserFollow, error)
	CountFollowing(ctx context.Context, followerID uint64) (int64, error)
	CountFollowers(ctx context.Context, followingID uint64) (int64, error)
	ListFollowingAmong(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// CreateUserFollow 重复关注由主键冲突挡住，由上层转为业务错误
func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, follow *model.UserFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *UserFollowRepoImpl) ExistsUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserFollowRepoImpl) GetFollowingList(ctx context.Context, followerID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var list []*model.UserFollow
	err := s.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (s *UserFollowRepoImpl) GetFollowerList(ctx context.Context, followingID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var list []*model.UserFollow
	err := s.db.WithContext(ctx).
		Where("following_id = ?", followingID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (s *UserFollowRepoImpl) CountFollowing(ctx context.Context, followerID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) CountFollowers(ctx context.Context, followingID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("following_id = ?", followingID).
		Count(&count).Error
	return count, err
}

// ListFollowingAmong 批量判断候选用户里哪些已被关注
func (s *UserFollowRepoImpl) ListFollowingAmong(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	return ids, err
}
