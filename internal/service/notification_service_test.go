package service

import (
	"Atmosphere/internal/api/dto"
	appmongo "Atmosphere/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationListAndMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, repo.CreateNotification(ctx, &appmongo.Notification{
		ReceiverID: 1, SenderID: 2, Type: appmongo.NotifyTypeLike, TargetKind: "startup", TargetID: 10,
	}))
	require.NoError(t, repo.CreateNotification(ctx, &appmongo.Notification{
		ReceiverID: 1, SenderID: 3, Type: appmongo.NotifyTypeCrown, TargetKind: "startup", TargetID: 10,
	}))

	resp, err := svc.GetNotificationList(ctx, 1, &dto.NotificationListReq{PageQuery: dto.PageQuery{Page: 1, Size: 10}})
	require.NoError(t, err)
	assert.Len(t, resp.List, 2)
	assert.Equal(t, int64(2), resp.UnreadCount)

	require.NoError(t, svc.MarkAsRead(ctx, 1, resp.List[0].ID))

	unread, err := svc.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAllAsRead(ctx, 1))
	unread, err = svc.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestMarkAsReadOwnershipAndMissing(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, repo.CreateNotification(ctx, &appmongo.Notification{
		ReceiverID: 1, SenderID: 2, Type: appmongo.NotifyTypeShare, TargetKind: "post", TargetID: 5,
	}))
	resp, err := svc.GetNotificationList(ctx, 1, &dto.NotificationListReq{PageQuery: dto.PageQuery{Page: 1, Size: 10}})
	require.NoError(t, err)
	require.Len(t, resp.List, 1)

	// 标记别人的通知是越权，不是不存在
	assert.ErrorIs(t, svc.MarkAsRead(ctx, 2, resp.List[0].ID), ErrPermissionDenied)
	// 越权尝试不改变已读状态
	unread, err := svc.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// 非法 ID 与不存在的通知都按 404 处理
	assert.ErrorIs(t, svc.MarkAsRead(ctx, 1, "not-an-object-id"), ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkAsRead(ctx, 1, primitive.NewObjectID().Hex()), ErrNotificationNotFound)
}
