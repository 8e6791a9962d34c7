package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
)

type ReelRepo interface {
	CreateReel(ctx context.Context, reel *model.Reel) error
	GetReelByID(ctx context.Context, id uint64) (*model.Reel, error)
	GetReelList(ctx context.Context, userID uint64, limit, offset int) ([]*model.Reel, error)
}

type ReelRepoImpl struct {
	db *gorm.DB
}

func NewReelRepo(db *gorm.DB) ReelRepo {
	return &ReelRepoImpl{db: db}
}

func (s *ReelRepoImpl) CreateReel(ctx context.Context, reel *model.Reel) error {
	return s.db.WithContext(ctx).Create(reel).Error
}

func (s *ReelRepoImpl) GetReelByID(ctx context.Context, id uint64) (*model.Reel, error) {
	var reel model.Reel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&reel).Error
	if err != nil {
		return nil, err
	}
	return &reel, nil
}

func (s *ReelRepoImpl) GetReelList(ctx context.Context, userID uint64, limit, offset int) ([]*model.Reel, error) {
	var list []*model.Reel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
