package job

import (
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	appredis "Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func migrateFollows(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(&model.UserFollow{}))
}

func TestFollowCountReconcile(t *testing.T) {
	db, mr := newJobEnv(t)
	migrateFollows(t, db)
	ctx := context.Background()

	// 用户 1 被 2、3 关注，自己关注 2
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 2, FollowingID: 1}).Error)
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 3, FollowingID: 1}).Error)
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 1, FollowingID: 2}).Error)

	// 缓存里是漂移值
	require.NoError(t, mr.Set(consts.UserFollowerCountKey+"1", "99"))
	require.NoError(t, appredis.SAdd(ctx, consts.UserFollowDirtyKey, "1"))

	NewFollowCountJob(repository.NewUserFollowRepo(db)).Run()

	followers, err := appredis.GetInt64(ctx, consts.UserFollowerCountKey+"1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := appredis.GetInt64(ctx, consts.UserFollowingCountKey+"1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	assert.False(t, mr.Exists(consts.UserFollowDirtyKey))
}

func TestFollowCountReconcileNoDirtySet(t *testing.T) {
	db, mr := newJobEnv(t)
	migrateFollows(t, db)

	require.NoError(t, mr.Set(consts.UserFollowerCountKey+strconv.Itoa(1), "99"))

	NewFollowCountJob(repository.NewUserFollowRepo(db)).Run()

	// 没有脏用户时缓存原样保留
	followers, err := appredis.GetInt64(context.Background(), consts.UserFollowerCountKey+"1")
	require.NoError(t, err)
	assert.Equal(t, int64(99), followers)
}
