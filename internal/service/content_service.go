package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/minio"
	"Atmosphere/internal/repository"
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// ContentService 动态与短视频的发布和查询
type ContentService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostReq) (*dto.PostItem, error)
	GetPost(ctx context.Context, id uint64) (*dto.PostItem, error)
	GetPostList(ctx context.Context, userID uint64, page *dto.PageQuery) ([]*dto.PostItem, error)
	CreateReel(ctx context.Context, userID uint64, req *dto.CreateReelReq) (*dto.ReelItem, error)
	GetReel(ctx context.Context, id uint64) (*dto.ReelItem, error)
	GetReelList(ctx context.Context, userID uint64, page *dto.PageQuery) ([]*dto.ReelItem, error)
}

type ContentServiceImpl struct {
	postRepo repository.PostRepo
	reelRepo repository.ReelRepo
}

func NewContentService(postRepo repository.PostRepo, reelRepo repository.ReelRepo) ContentService {
	return &ContentServiceImpl{postRepo: postRepo, reelRepo: reelRepo}
}

func (s *ContentServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostReq) (*dto.PostItem, error) {
	post := &model.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return buildPostItem(post)
}

func (s *ContentServiceImpl) GetPost(ctx context.Context, id uint64) (*dto.PostItem, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return buildPostItem(post)
}

func (s *ContentServiceImpl) GetPostList(ctx context.Context, userID uint64, page *dto.PageQuery) ([]*dto.PostItem, error) {
	list, err := s.postRepo.GetPostList(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PostItem, 0, len(list))
	for _, p := range list {
		item, err := buildPostItem(p)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ContentServiceImpl) CreateReel(ctx context.Context, userID uint64, req *dto.CreateReelReq) (*dto.ReelItem, error) {
	reel := &model.Reel{
		UserID:   userID,
		Caption:  req.Caption,
		VideoURL: req.VideoURL,
	}
	if err := s.reelRepo.CreateReel(ctx, reel); err != nil {
		return nil, err
	}
	return buildReelItem(reel)
}

func (s *ContentServiceImpl) GetReel(ctx context.Context, id uint64) (*dto.ReelItem, error) {
	reel, err := s.reelRepo.GetReelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return buildReelItem(reel)
}

func (s *ContentServiceImpl) GetReelList(ctx context.Context, userID uint64, page *dto.PageQuery) ([]*dto.ReelItem, error) {
	list, err := s.reelRepo.GetReelList(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ReelItem, 0, len(list))
	for _, r := range list {
		item, err := buildReelItem(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func buildPostItem(post *model.Post) (*dto.PostItem, error) {
	var item dto.PostItem
	if err := copier.Copy(&item, post); err != nil {
		return nil, err
	}
	item.ImageURL = minio.GetPublicURL(post.ImageURL)
	return &item, nil
}

func buildReelItem(reel *model.Reel) (*dto.ReelItem, error) {
	var item dto.ReelItem
	if err := copier.Copy(&item, reel); err != nil {
		return nil, err
	}
	item.VideoURL = minio.GetPublicURL(reel.VideoURL)
	return &item, nil
}
