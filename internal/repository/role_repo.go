package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
)

type RoleRepo interface {
	GetRoleByCode(ctx context.Context, code string) (*model.Role, error)
	GetAllRoles(ctx context.Context) ([]*model.Role, error)
}

type RoleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepo {
	return &RoleRepoImpl{db: db}
}

func (s *RoleRepoImpl) GetRoleByCode(ctx context.Context, code string) (*model.Role, error) {
	var role model.Role
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleRepoImpl) GetAllRoles(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	err := s.db.WithContext(ctx).Find(&roles).Error
	return roles, err
}
