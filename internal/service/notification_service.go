package service

import (
	"Atmosphere/internal/api/dto"
	appmongo "Atmosphere/internal/pkg/mongo"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	GetNotificationList(ctx context.Context, userID uint64, req *dto.NotificationListReq) (*dto.NotificationListResp, error)
	MarkAsRead(ctx context.Context, userID uint64, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type NotificationServiceImpl struct {
	repo appmongo.NotificationRepo
}

func NewNotificationService(repo appmongo.NotificationRepo) NotificationService {
	return &NotificationServiceImpl{repo: repo}
}

func (s *NotificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, req *dto.NotificationListReq) (*dto.NotificationListResp, error) {
	list, err := s.repo.GetNotificationList(ctx, userID, req.UnreadOnly, int64(req.Size), int64(req.Offset()))
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NotificationItem, 0, len(list))
	for _, msg := range list {
		items = append(items, &dto.NotificationItem{
			ID:         msg.ID.Hex(),
			SenderID:   msg.SenderID,
			Type:       msg.Type,
			TargetKind: msg.TargetKind,
			TargetID:   msg.TargetID,
			Content:    msg.Content,
			Payload:    msg.Payload,
			IsRead:     msg.IsRead,
			CreatedAt:  msg.CreatedAt,
		})
	}
	return &dto.NotificationListResp{List: items, UnreadCount: unread}, nil
}

// MarkAsRead 标记他人的通知报 403，通知不存在报 404
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID uint64, notificationID string) error {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}

	msg, err := s.repo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	if msg.ReceiverID != userID {
		return ErrPermissionDenied
	}

	if err = s.repo.MarkAsRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}
