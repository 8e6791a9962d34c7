package service

import (
	"Atmosphere/internal/model"
	"Atmosphere/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTrendingService(t *testing.T, db *gorm.DB) TrendingService {
	t.Helper()
	newTestRedis(t)

	return NewTrendingService(
		repository.NewStartupRepo(db),
		repository.NewEngagementRepo(db),
		repository.NewCommentRepo(db),
	)
}

func engageAt(t *testing.T, db *gorm.DB, userID, targetID uint64, kind model.EngageKind, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Engagement{
		TargetKind: model.TargetStartup,
		TargetID:   targetID,
		UserID:     userID,
		Kind:       kind,
		CreatedAt:  at,
	}).Error)
}

func TestHottestWeightsAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newTrendingService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	investor := seedUser(t, db, "investor")

	acme := seedStartup(t, db, owner.ID, "Acme")
	globex := seedStartup(t, db, owner.ID, "Globex")
	initech := seedStartup(t, db, owner.ID, "Initech")

	now := time.Now()
	// Acme: 皇冠 10 + 点赞 8 = 18
	engageAt(t, db, investor.ID, acme.ID, model.EngageCrown, now)
	engageAt(t, db, fan.ID, acme.ID, model.EngageLike, now)
	// Globex: 两条评论 = 12
	require.NoError(t, db.Create(&model.Comment{StartupID: globex.ID, UserID: fan.ID, Content: "nice", CreatedAt: now}).Error)
	require.NoError(t, db.Create(&model.Comment{StartupID: globex.ID, UserID: investor.ID, Content: "great", CreatedAt: now}).Error)
	// Initech: 转发 = 4
	engageAt(t, db, fan.ID, initech.ID, model.EngageShare, now)

	items, err := svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, acme.ID, items[0].ID)
	assert.Equal(t, int64(18), items[0].Score)
	assert.Equal(t, globex.ID, items[1].ID)
	assert.Equal(t, int64(12), items[1].Score)
	assert.Equal(t, initech.ID, items[2].ID)
	assert.Equal(t, int64(4), items[2].Score)
}

func TestHottestIgnoresStaleWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newTrendingService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	// 8 天前的互动不进窗口
	engageAt(t, db, fan.ID, startup.ID, model.EngageLike, time.Now().Add(-8*24*time.Hour))

	items, err := svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHottestIncludesDormantStartupWithFreshEngagement(t *testing.T) {
	db := newTestDB(t)
	svc := newTrendingService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	// 公司资料一个月没动过，updated_at 不在窗口内
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, db.Model(&model.Startup{}).
		Where("id = ?", startup.ID).
		UpdateColumns(map[string]interface{}{
			"created_at":  old,
			"updated_at":  old,
			"launched_at": old,
		}).Error)

	// 靠新鲜互动就该进榜
	engageAt(t, db, fan.ID, startup.ID, model.EngageLike, time.Now())

	items, err := svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, startup.ID, items[0].ID)
	assert.Equal(t, int64(8), items[0].Score)
}

func TestHottestServesFromCache(t *testing.T) {
	db := newTestDB(t)
	svc := newTrendingService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")
	engageAt(t, db, fan.ID, startup.ID, model.EngageLike, time.Now())

	items, err := svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// 缓存命中期间新增互动不会立即反映
	engageAt(t, db, owner.ID, startup.ID, model.EngageShare, time.Now())
	items, err = svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(8), items[0].Score)

	// 刷新后重算
	require.NoError(t, svc.RefreshHottest(ctx))
	items, err = svc.GetHottest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), items[0].Score)
}
