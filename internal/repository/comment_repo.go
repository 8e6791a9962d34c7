package repository

import (
	"Atmosphere/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	DeleteComment(ctx context.Context, id, userID uint64) (bool, error)
	GetCommentList(ctx context.Context, startupID uint64, limit, offset int) ([]*model.Comment, error)
	CountByStartup(ctx context.Context, startupID uint64) (int64, error)
	WindowCounts(ctx context.Context, startupIDs []uint64, since time.Time) (map[uint64]int64, error)
	ActiveStartupIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 软删除，仅作者本人可删
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id, userID uint64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *CommentRepoImpl) GetCommentList(ctx context.Context, startupID uint64, limit, offset int) ([]*model.Comment, error) {
	var list []*model.Comment
	err := s.db.WithContext(ctx).
		Where("startup_id = ? AND is_deleted = ?", startupID, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (s *CommentRepoImpl) CountByStartup(ctx context.Context, startupID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("startup_id = ? AND is_deleted = ?", startupID, false).
		Count(&count).Error
	return count, err
}

// ActiveStartupIDs 时间窗口内有新评论的公司，热度榜候选的一路来源
func (s *CommentRepoImpl) ActiveStartupIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Distinct("startup_id").
		Where("is_deleted = ? AND created_at >= ?", false, since).
		Limit(limit).
		Pluck("startup_id", &ids).Error
	return ids, err
}

// WindowCounts 统计窗口内各公司的评论数，热度榜使用
func (s *CommentRepoImpl) WindowCounts(ctx context.Context, startupIDs []uint64, since time.Time) (map[uint64]int64, error) {
	if len(startupIDs) == 0 {
		return map[uint64]int64{}, nil
	}

	type row struct {
		StartupID uint64
		Total     int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Select("startup_id, COUNT(*) AS total").
		Where("startup_id IN ? AND is_deleted = ? AND created_at >= ?", startupIDs, false, since).
		Group("startup_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		res[r.StartupID] = r.Total
	}
	return res, nil
}
