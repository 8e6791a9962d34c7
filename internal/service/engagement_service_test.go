package service

import (
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/ws"
	"Atmosphere/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEngagementService(t *testing.T, db *gorm.DB) (EngagementService, *fakeNotificationRepo) {
	t.Helper()
	newTestRedis(t)

	notificationRepo := newFakeNotificationRepo()
	notifier := NewNotifier(notificationRepo, ws.NewHub())
	svc := NewEngagementService(
		repository.NewEngagementRepo(db),
		repository.NewTargetRepo(db),
		repository.NewUserRolesRepo(db),
		repository.NewUserFollowRepo(db),
		notifier,
	)
	return svc, notificationRepo
}

func TestEngageIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	resp, err := svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageLike)
	require.NoError(t, err)
	assert.True(t, resp.Engaged)
	assert.Equal(t, int64(1), resp.Count)

	// 重复点赞不再加数
	for i := 0; i < 20; i++ {
		resp, err = svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageLike)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Count)
	}

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(1), st.LikesCount)
}

func TestConcurrentEngagesCountEachUserOnce(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	// 内存 sqlite 扛不住并发写，把底层连接收成一个
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	owner := seedUser(t, db, "owner")
	startup := seedStartup(t, db, owner.ID, "Acme")

	const fans = 50
	userIDs := make([]uint64, fans)
	for i := range userIDs {
		userIDs[i] = seedUser(t, db, fmt.Sprintf("fan%02d", i)).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, fans)
	for _, uid := range userIDs {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			_, err := svc.Engage(ctx, uid, model.TargetStartup, startup.ID, model.EngageLike)
			errs <- err
		}(uid)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var records int64
	require.NoError(t, db.Model(&model.Engagement{}).
		Where("target_kind = ? AND target_id = ? AND kind = ?", model.TargetStartup, startup.ID, model.EngageLike).
		Count(&records).Error)
	assert.Equal(t, int64(fans), records)

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(fans), st.LikesCount)
}

func TestEngageTargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)

	fan := seedUser(t, db, "fan")

	_, err := svc.Engage(context.Background(), fan.ID, model.TargetStartup, 999, model.EngageLike)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestCrownRequiresInvestor(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	startup := seedStartup(t, db, owner.ID, "Acme")

	personal := seedUser(t, db, "personal", consts.RolePersonal)
	_, err := svc.Engage(ctx, personal.ID, model.TargetStartup, startup.ID, model.EngageCrown)
	assert.ErrorIs(t, err, ErrCrownForbidden)

	investor := seedUser(t, db, "investor", consts.RoleInvestor)
	resp, err := svc.Engage(ctx, investor.ID, model.TargetStartup, startup.ID, model.EngageCrown)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
}

func TestDisengageFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	_, err := svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageShare)
	require.NoError(t, err)

	resp, err := svc.Disengage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageShare)
	require.NoError(t, err)
	assert.False(t, resp.Engaged)
	assert.Equal(t, int64(0), resp.Count)

	// 重复撤销是空操作，计数不下穿 0
	resp, err = svc.Disengage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageShare)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Count)
}

func TestEngageNotifiesOwnerOnce(t *testing.T) {
	db := newTestDB(t)
	svc, notificationRepo := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	_, err := svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageLike)
	require.NoError(t, err)
	_, err = svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageLike)
	require.NoError(t, err)

	unread, err := notificationRepo.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestEngageSelfDoesNotNotify(t *testing.T) {
	db := newTestDB(t)
	svc, notificationRepo := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	startup := seedStartup(t, db, owner.ID, "Acme")

	_, err := svc.Engage(ctx, owner.ID, model.TargetStartup, startup.ID, model.EngageLike)
	require.NoError(t, err)

	unread, err := notificationRepo.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestGetEngagementFlags(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newEngagementService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	investor := seedUser(t, db, "investor", consts.RoleInvestor)
	s1 := seedStartup(t, db, owner.ID, "Acme")
	s2 := seedStartup(t, db, owner.ID, "Globex")
	s3 := seedStartup(t, db, other.ID, "Initech")

	_, err := svc.Engage(ctx, investor.ID, model.TargetStartup, s1.ID, model.EngageLike)
	require.NoError(t, err)
	_, err = svc.Engage(ctx, investor.ID, model.TargetStartup, s2.ID, model.EngageCrown)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: investor.ID, FollowingID: owner.ID}).Error)

	resp, err := svc.GetEngagementFlags(ctx, investor.ID, model.TargetStartup, []uint64{s1.ID, s2.ID, s3.ID})
	require.NoError(t, err)

	assert.True(t, resp.Flags[s1.ID].Liked)
	assert.False(t, resp.Flags[s1.ID].Crowned)
	assert.True(t, resp.Flags[s2.ID].Crowned)
	assert.False(t, resp.Flags[s3.ID].Liked)
	assert.False(t, resp.Flags[s3.ID].Shared)

	// 关注了 owner，没关注 other
	assert.True(t, resp.Flags[s1.ID].FollowingOwner)
	assert.True(t, resp.Flags[s2.ID].FollowingOwner)
	assert.False(t, resp.Flags[s3.ID].FollowingOwner)
}

// brokenTxEngagementRepo 模拟事务不可用，只放行非事务路径
type brokenTxEngagementRepo struct {
	repository.EngagementRepo
}

func (s *brokenTxEngagementRepo) CreateWithCounter(context.Context, *model.Engagement) error {
	return errors.New("tx unavailable")
}

func TestEngageFallsBackWhenTxFails(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	svc := NewEngagementService(
		&brokenTxEngagementRepo{EngagementRepo: repository.NewEngagementRepo(db)},
		repository.NewTargetRepo(db),
		repository.NewUserRolesRepo(db),
		repository.NewUserFollowRepo(db),
		NewNotifier(newFakeNotificationRepo(), ws.NewHub()),
	)

	resp, err := svc.Engage(ctx, fan.ID, model.TargetStartup, startup.ID, model.EngageLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)

	var count int64
	require.NoError(t, db.Model(&model.Engagement{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(1), st.LikesCount)
}
