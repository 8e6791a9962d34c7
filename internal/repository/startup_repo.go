package repository

import (
	"Atmosphere/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type StartupRepo interface {
	CreateStartup(ctx context.Context, startup *model.Startup) error
	GetStartupByID(ctx context.Context, id uint64) (*model.Startup, error)
	GetStartupsByIDs(ctx context.Context, ids []uint64) ([]*model.Startup, error)
	RecentStartupIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error)
	DeleteStartup(ctx context.Context, id, ownerID uint64) (bool, error)
	IncrCommentsCount(ctx context.Context, id uint64, delta int) error
	SetCommentsCount(ctx context.Context, id uint64, value int64) error
}

type StartupRepoImpl struct {
	db *gorm.DB
}

func NewStartupRepo(db *gorm.DB) StartupRepo {
	return &StartupRepoImpl{db: db}
}

func (s *StartupRepoImpl) CreateStartup(ctx context.Context, startup *model.Startup) error {
	return s.db.WithContext(ctx).Create(startup).Error
}

func (s *StartupRepoImpl) GetStartupByID(ctx context.Context, id uint64) (*model.Startup, error) {
	var startup model.Startup
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&startup).Error
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

func (s *StartupRepoImpl) GetStartupsByIDs(ctx context.Context, ids []uint64) ([]*model.Startup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []*model.Startup
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// RecentStartupIDs 热度榜候选的一路来源：窗口内新上线或资料有更新的公司。
// 计数回写走 UpdateColumn 不刷新 updated_at，只靠互动活跃的老公司由互动、评论两路补进候选。
func (s *StartupRepoImpl) RecentStartupIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Startup{}).
		Where("updated_at >= ? OR launched_at >= ?", since, since).
		Order("updated_at DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// IncrCommentsCount 原子增减评论计数，自减同样不允许降到负数
func (s *StartupRepoImpl) IncrCommentsCount(ctx context.Context, id uint64, delta int) error {
	query := s.db.WithContext(ctx).Model(&model.Startup{})
	if delta < 0 {
		query = query.Where("id = ? AND comments_count > 0", id)
	} else {
		query = query.Where("id = ?", id)
	}
	return query.UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

func (s *StartupRepoImpl) SetCommentsCount(ctx context.Context, id uint64, value int64) error {
	return s.db.WithContext(ctx).Model(&model.Startup{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", value).Error
}

func (s *StartupRepoImpl) DeleteStartup(ctx context.Context, id, ownerID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Startup{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
