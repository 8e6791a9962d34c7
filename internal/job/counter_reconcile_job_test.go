package job

import (
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	appredis "Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newJobEnv(t *testing.T) (*gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Startup{}, &model.Engagement{}, &model.Comment{}))

	mr := miniredis.RunT(t)
	appredis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return db, mr
}

func TestCounterReconcileFixesDrift(t *testing.T) {
	db, mr := newJobEnv(t)
	ctx := context.Background()

	// 快照漂移：行上记 5 个赞、0 条评论，真实是 2 个赞、1 条评论
	startup := &model.Startup{OwnerID: 1, Name: "Acme", LikesCount: 5}
	require.NoError(t, db.Create(startup).Error)
	for userID := uint64(10); userID < 12; userID++ {
		require.NoError(t, db.Create(&model.Engagement{
			TargetKind: model.TargetStartup, TargetID: startup.ID, UserID: userID, Kind: model.EngageLike,
		}).Error)
	}
	require.NoError(t, db.Create(&model.Comment{StartupID: startup.ID, UserID: 10, Content: "hi"}).Error)

	require.NoError(t, appredis.SAdd(ctx, consts.EngageDirtyKey,
		"startup:"+strconv.FormatUint(startup.ID, 10)))

	NewCounterReconcileJob(
		repository.NewEngagementRepo(db),
		repository.NewCommentRepo(db),
		repository.NewStartupRepo(db),
	).Run()

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(2), st.LikesCount)
	assert.Equal(t, int64(1), st.CommentsCount)

	// 脏集合及临时键都被清掉
	assert.False(t, mr.Exists(consts.EngageDirtyKey))
	assert.False(t, mr.Exists(consts.EngageDirtyKey+":processing"))
}

func TestCounterReconcileSkipsWhenClean(t *testing.T) {
	db, _ := newJobEnv(t)

	startup := &model.Startup{OwnerID: 1, Name: "Acme", LikesCount: 5}
	require.NoError(t, db.Create(startup).Error)

	NewCounterReconcileJob(
		repository.NewEngagementRepo(db),
		repository.NewCommentRepo(db),
		repository.NewStartupRepo(db),
	).Run()

	// 脏集合为空，不碰任何快照
	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(5), st.LikesCount)
}

func TestCounterReconcileSkipsMalformedMember(t *testing.T) {
	db, _ := newJobEnv(t)
	ctx := context.Background()

	startup := &model.Startup{OwnerID: 1, Name: "Acme", LikesCount: 3}
	require.NoError(t, db.Create(startup).Error)

	require.NoError(t, appredis.SAdd(ctx, consts.EngageDirtyKey, "garbage"))
	require.NoError(t, appredis.SAdd(ctx, consts.EngageDirtyKey,
		"startup:"+strconv.FormatUint(startup.ID, 10)))

	NewCounterReconcileJob(
		repository.NewEngagementRepo(db),
		repository.NewCommentRepo(db),
		repository.NewStartupRepo(db),
	).Run()

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(0), st.LikesCount)
}
