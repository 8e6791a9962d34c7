package repository

import (
	"Atmosphere/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrUnknownTargetKind = errors.New("unknown target kind")

type EngagementRepo interface {
	// CreateWithCounter 事务路径：插入互动记录并原子自增计数快照
	CreateWithCounter(ctx context.Context, rec *model.Engagement) error
	// Create 降级路径：仅插入互动记录，计数由调用方补偿
	Create(ctx context.Context, rec *model.Engagement) error
	// DeleteWithCounter 事务路径：删除互动记录并原子自减计数快照（下限 0）
	DeleteWithCounter(ctx context.Context, rec *model.Engagement) (bool, error)
	// Delete 降级路径：仅删除互动记录
	Delete(ctx context.Context, rec *model.Engagement) (bool, error)

	IncrSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, delta int) error
	GetSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (int64, error)
	SetSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, value int64) error

	Exists(ctx context.Context, targetKind model.TargetKind, targetID, userID uint64, kind model.EngageKind) (bool, error)
	CountByTarget(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (int64, error)
	ListEngagedTargetIDs(ctx context.Context, userID uint64, targetKind model.TargetKind, kind model.EngageKind, targetIDs []uint64) ([]uint64, error)
	WindowCounts(ctx context.Context, targetKind model.TargetKind, targetIDs []uint64, since time.Time) (map[uint64]map[model.EngageKind]int64, error)
	ActiveTargetIDs(ctx context.Context, targetKind model.TargetKind, since time.Time, limit int) ([]uint64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db: db}
}

func (s *EngagementRepoImpl) CreateWithCounter(ctx context.Context, rec *model.Engagement) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return incrSnapshot(tx, rec.TargetKind, rec.TargetID, rec.Kind, 1)
	})
}

func (s *EngagementRepoImpl) Create(ctx context.Context, rec *model.Engagement) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *EngagementRepoImpl) DeleteWithCounter(ctx context.Context, rec *model.Engagement) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("target_kind = ? AND target_id = ? AND user_id = ? AND kind = ?",
				rec.TargetKind, rec.TargetID, rec.UserID, rec.Kind).
			Delete(&model.Engagement{})
		if res.Error != nil {
			return res.Error
		}
		// 并发撤销时只有真正删到行的那次才自减
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return incrSnapshot(tx, rec.TargetKind, rec.TargetID, rec.Kind, -1)
	})
	return deleted, err
}

func (s *EngagementRepoImpl) Delete(ctx context.Context, rec *model.Engagement) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ? AND user_id = ? AND kind = ?",
			rec.TargetKind, rec.TargetID, rec.UserID, rec.Kind).
		Delete(&model.Engagement{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *EngagementRepoImpl) IncrSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, delta int) error {
	return incrSnapshot(s.db.WithContext(ctx), targetKind, targetID, kind, delta)
}

// incrSnapshot 原子增减快照列，自减带 >0 守卫保证计数不为负
func incrSnapshot(db *gorm.DB, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, delta int) error {
	meta, ok := metaFor(targetKind)
	if !ok {
		return ErrUnknownTargetKind
	}
	col, ok := meta.counters[kind]
	if !ok {
		return ErrUnknownTargetKind
	}

	query := db.Table(meta.table)
	if delta < 0 {
		query = query.Where("id = ? AND "+col+" > 0", targetID)
	} else {
		query = query.Where("id = ?", targetID)
	}
	return query.UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
}

func (s *EngagementRepoImpl) GetSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (int64, error) {
	meta, ok := metaFor(targetKind)
	if !ok {
		return 0, ErrUnknownTargetKind
	}
	col, ok := meta.counters[kind]
	if !ok {
		return 0, ErrUnknownTargetKind
	}

	var value int64
	err := s.db.WithContext(ctx).
		Table(meta.table).
		Select(col).
		Where("id = ?", targetID).
		Scan(&value).Error
	return value, err
}

func (s *EngagementRepoImpl) SetSnapshot(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind, value int64) error {
	meta, ok := metaFor(targetKind)
	if !ok {
		return ErrUnknownTargetKind
	}
	col, ok := meta.counters[kind]
	if !ok {
		return ErrUnknownTargetKind
	}

	return s.db.WithContext(ctx).
		Table(meta.table).
		Where("id = ?", targetID).
		UpdateColumn(col, value).Error
}

func (s *EngagementRepoImpl) Exists(ctx context.Context, targetKind model.TargetKind, targetID, userID uint64, kind model.EngageKind) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Where("target_kind = ? AND target_id = ? AND user_id = ? AND kind = ?",
			targetKind, targetID, userID, kind).
		Count(&count).Error
	return count > 0, err
}

func (s *EngagementRepoImpl) CountByTarget(ctx context.Context, targetKind model.TargetKind, targetID uint64, kind model.EngageKind) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Where("target_kind = ? AND target_id = ? AND kind = ?", targetKind, targetID, kind).
		Count(&count).Error
	return count, err
}

// ListEngagedTargetIDs 批量查询某用户在给定目标集合中已互动的目标
func (s *EngagementRepoImpl) ListEngagedTargetIDs(ctx context.Context, userID uint64, targetKind model.TargetKind, kind model.EngageKind, targetIDs []uint64) ([]uint64, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Where("user_id = ? AND target_kind = ? AND kind = ? AND target_id IN ?",
			userID, targetKind, kind, targetIDs).
		Pluck("target_id", &ids).Error
	return ids, err
}

// ActiveTargetIDs 时间窗口内被互动过的目标，热度榜候选的一路来源
func (s *EngagementRepoImpl) ActiveTargetIDs(ctx context.Context, targetKind model.TargetKind, since time.Time, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Distinct("target_id").
		Where("target_kind = ? AND created_at >= ?", targetKind, since).
		Limit(limit).
		Pluck("target_id", &ids).Error
	return ids, err
}

// WindowCounts 统计时间窗口内各目标的分类互动数，热度榜使用
func (s *EngagementRepoImpl) WindowCounts(ctx context.Context, targetKind model.TargetKind, targetIDs []uint64, since time.Time) (map[uint64]map[model.EngageKind]int64, error) {
	if len(targetIDs) == 0 {
		return map[uint64]map[model.EngageKind]int64{}, nil
	}

	type row struct {
		TargetID uint64
		Kind     model.EngageKind
		Total    int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Select("target_id, kind, COUNT(*) AS total").
		Where("target_kind = ? AND target_id IN ? AND created_at >= ?", targetKind, targetIDs, since).
		Group("target_id, kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[uint64]map[model.EngageKind]int64, len(rows))
	for _, r := range rows {
		if res[r.TargetID] == nil {
			res[r.TargetID] = make(map[model.EngageKind]int64)
		}
		res[r.TargetID][r.Kind] = r.Total
	}
	return res, nil
}
