package repository

import (
	"Atmosphere/internal/model"
	"context"

	"gorm.io/gorm"
)

// TargetRepo 以统一视角访问各类互动目标（startup/post/reel）
type TargetRepo interface {
	// OwnerID 返回目标所属用户，目标不存在时 found 为 false
	OwnerID(ctx context.Context, targetKind model.TargetKind, targetID uint64) (ownerID uint64, found bool, err error)
	OwnersByIDs(ctx context.Context, targetKind model.TargetKind, targetIDs []uint64) (map[uint64]uint64, error)
	Exists(ctx context.Context, targetKind model.TargetKind, targetID uint64) (bool, error)
}

type TargetRepoImpl struct {
	db *gorm.DB
}

func NewTargetRepo(db *gorm.DB) TargetRepo {
	return &TargetRepoImpl{db: db}
}

func (s *TargetRepoImpl) OwnerID(ctx context.Context, targetKind model.TargetKind, targetID uint64) (uint64, bool, error) {
	meta, ok := metaFor(targetKind)
	if !ok {
		return 0, false, ErrUnknownTargetKind
	}

	var owners []uint64
	err := s.db.WithContext(ctx).
		Table(meta.table).
		Where("id = ?", targetID).
		Limit(1).
		Pluck(meta.ownerCol, &owners).Error
	if err != nil {
		return 0, false, err
	}
	if len(owners) == 0 {
		return 0, false, nil
	}
	return owners[0], true, nil
}

func (s *TargetRepoImpl) OwnersByIDs(ctx context.Context, targetKind model.TargetKind, targetIDs []uint64) (map[uint64]uint64, error) {
	meta, ok := metaFor(targetKind)
	if !ok {
		return nil, ErrUnknownTargetKind
	}
	if len(targetIDs) == 0 {
		return map[uint64]uint64{}, nil
	}

	type row struct {
		ID    uint64
		Owner uint64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table(meta.table).
		Select("id, " + meta.ownerCol + " AS owner").
		Where("id IN ?", targetIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[uint64]uint64, len(rows))
	for _, r := range rows {
		res[r.ID] = r.Owner
	}
	return res, nil
}

func (s *TargetRepoImpl) Exists(ctx context.Context, targetKind model.TargetKind, targetID uint64) (bool, error) {
	meta, ok := metaFor(targetKind)
	if !ok {
		return false, ErrUnknownTargetKind
	}

	var count int64
	err := s.db.WithContext(ctx).
		Table(meta.table).
		Where("id = ?", targetID).
		Count(&count).Error
	return count > 0, err
}
