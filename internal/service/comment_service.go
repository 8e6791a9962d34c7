package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/mongo"
	"Atmosphere/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, startupID uint64, req *dto.CreateCommentReq) (*dto.CommentItem, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetCommentList(ctx context.Context, startupID uint64, page *dto.PageQuery) (*dto.CommentListResp, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	startupRepo repository.StartupRepo
	notifier    *Notifier
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	startupRepo repository.StartupRepo,
	notifier *Notifier,
) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		startupRepo: startupRepo,
		notifier:    notifier,
	}
}

// CreateComment 评论落库并同步公司评论计数，再给公司主人发通知
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID, startupID uint64, req *dto.CreateCommentReq) (*dto.CommentItem, error) {
	startup, err := s.startupRepo.GetStartupByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		StartupID: startupID,
		UserID:    userID,
		Content:   req.Content,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err = s.startupRepo.IncrCommentsCount(ctx, startupID, 1); err != nil {
		log.Error("incr comment counter failed", "startupID", startupID, "err", err)
	}

	s.notifier.Push(ctx, &mongo.Notification{
		ReceiverID: startup.OwnerID,
		SenderID:   userID,
		Type:       mongo.NotifyTypeComment,
		TargetKind: string(model.TargetStartup),
		TargetID:   startupID,
		Content:    req.Content,
	})

	var item dto.CommentItem
	if err = copier.Copy(&item, comment); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteComment 软删除并回退评论计数
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	deleted, err := s.commentRepo.DeleteComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPermissionDenied
	}

	if err = s.startupRepo.IncrCommentsCount(ctx, comment.StartupID, -1); err != nil {
		log.Error("decr comment counter failed", "startupID", comment.StartupID, "err", err)
	}
	return nil
}

func (s *CommentServiceImpl) GetCommentList(ctx context.Context, startupID uint64, page *dto.PageQuery) (*dto.CommentListResp, error) {
	list, err := s.commentRepo.GetCommentList(ctx, startupID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.commentRepo.CountByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentItem, 0, len(list))
	for _, c := range list {
		var item dto.CommentItem
		if err = copier.Copy(&item, c); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return &dto.CommentListResp{List: items, Total: total}, nil
}
