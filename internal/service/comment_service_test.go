package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/ws"
	"Atmosphere/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(t *testing.T, db *gorm.DB) (CommentService, *fakeNotificationRepo) {
	t.Helper()
	newTestRedis(t)

	notificationRepo := newFakeNotificationRepo()
	svc := NewCommentService(
		repository.NewCommentRepo(db),
		repository.NewStartupRepo(db),
		NewNotifier(notificationRepo, ws.NewHub()),
	)
	return svc, notificationRepo
}

func TestCreateCommentUpdatesCounterAndNotifies(t *testing.T) {
	db := newTestDB(t)
	svc, notificationRepo := newCommentService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	item, err := svc.CreateComment(ctx, fan.ID, startup.ID, &dto.CreateCommentReq{Content: "nice pitch"})
	require.NoError(t, err)
	assert.Equal(t, "nice pitch", item.Content)

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(1), st.CommentsCount)

	unread, err := notificationRepo.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestCreateCommentStartupNotFound(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newCommentService(t, db)

	fan := seedUser(t, db, "fan")

	_, err := svc.CreateComment(context.Background(), fan.ID, 999, &dto.CreateCommentReq{Content: "hi"})
	assert.ErrorIs(t, err, ErrStartupNotFound)
}

func TestDeleteCommentOwnershipAndCounter(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newCommentService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	other := seedUser(t, db, "other")
	startup := seedStartup(t, db, owner.ID, "Acme")

	item, err := svc.CreateComment(ctx, fan.ID, startup.ID, &dto.CreateCommentReq{Content: "hi"})
	require.NoError(t, err)

	// 只能删自己的评论
	assert.ErrorIs(t, svc.DeleteComment(ctx, other.ID, item.ID), ErrPermissionDenied)

	require.NoError(t, svc.DeleteComment(ctx, fan.ID, item.ID))
	assert.ErrorIs(t, svc.DeleteComment(ctx, fan.ID, item.ID), ErrCommentNotFound)

	var st model.Startup
	require.NoError(t, db.First(&st, startup.ID).Error)
	assert.Equal(t, int64(0), st.CommentsCount)
}

func TestGetCommentListPagination(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newCommentService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	startup := seedStartup(t, db, owner.ID, "Acme")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateComment(ctx, fan.ID, startup.ID, &dto.CreateCommentReq{Content: "hi"})
		require.NoError(t, err)
	}

	resp, err := svc.GetCommentList(ctx, startup.ID, &dto.PageQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.List, 2)
}
