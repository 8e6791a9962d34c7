package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	UpdateAvatar(ctx context.Context, id uint64, avatarURL string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("UserRoles").
		Where("id = ? AND is_delete = ?", id, false).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("UserRoles").
		Where("email = ? AND is_delete = ?", email, false).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("UserRoles").
		Where("username = ? AND is_delete = ?", username, false).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_delete = ?", ids, false).
		Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND is_delete = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) UpdateAvatar(ctx context.Context, id uint64, avatarURL string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("avatar_url", avatarURL).Error
}
