package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRolesRepo interface {
	AddUserRole(ctx context.Context, userID, roleID uint64) error
	DeleteUserRole(ctx context.Context, userID, roleID uint64) error
	GetRoleCodesByUserID(ctx context.Context, userID uint64) ([]string, error)
	HasRoleCode(ctx context.Context, userID uint64, code string) (bool, error)
}

type UserRolesRepoImpl struct {
	db *gorm.DB
}

func NewUserRolesRepo(db *gorm.DB) UserRolesRepo {
	return &UserRolesRepoImpl{db: db}
}

func (s *UserRolesRepoImpl) AddUserRole(ctx context.Context, userID, roleID uint64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRole{UserID: userID, RoleID: roleID}).Error
}

func (s *UserRolesRepoImpl) DeleteUserRole(ctx context.Context, userID, roleID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRole{}).Error
}

func (s *UserRolesRepoImpl) GetRoleCodesByUserID(ctx context.Context, userID uint64) ([]string, error) {
	var codes []string
	err := s.db.WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.code", &codes).Error
	return codes, err
}

// HasRoleCode 判断用户是否持有指定角色，皇冠互动的投资人校验走这里
func (s *UserRolesRepoImpl) HasRoleCode(ctx context.Context, userID uint64, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.code = ?", userID, code).
		Count(&count).Error
	return count > 0, err
}
