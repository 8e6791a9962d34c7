package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/es"
	"Atmosphere/internal/pkg/minio"
	"Atmosphere/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type StartupService interface {
	CreateStartup(ctx context.Context, ownerID uint64, req *dto.CreateStartupReq) (*dto.StartupItem, error)
	GetStartup(ctx context.Context, id uint64) (*dto.StartupItem, error)
	SearchStartups(ctx context.Context, req *dto.SearchStartupReq) ([]*dto.StartupItem, error)
	DeleteStartup(ctx context.Context, id, operatorID uint64) error
}

type StartupServiceImpl struct {
	startupRepo   repository.StartupRepo
	startupSearch es.StartupRepo
}

func NewStartupService(startupRepo repository.StartupRepo, startupSearch es.StartupRepo) StartupService {
	return &StartupServiceImpl{
		startupRepo:   startupRepo,
		startupSearch: startupSearch,
	}
}

// CreateStartup 落库即可，搜索索引由 binlog 消费端同步
func (s *StartupServiceImpl) CreateStartup(ctx context.Context, ownerID uint64, req *dto.CreateStartupReq) (*dto.StartupItem, error) {
	logoURL := req.LogoURL
	if logoURL == "" {
		logoURL = consts.DefaultLogoURL
	}
	startup := &model.Startup{
		OwnerID:    ownerID,
		Name:       req.Name,
		Pitch:      req.Pitch,
		LogoURL:    logoURL,
		LaunchedAt: time.Now(),
	}
	if err := s.startupRepo.CreateStartup(ctx, startup); err != nil {
		return nil, err
	}
	return buildStartupItem(startup)
}

func (s *StartupServiceImpl) GetStartup(ctx context.Context, id uint64) (*dto.StartupItem, error) {
	startup, err := s.startupRepo.GetStartupByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return buildStartupItem(startup)
}

// SearchStartups ES 召回后回源 DB 补计数快照
func (s *StartupServiceImpl) SearchStartups(ctx context.Context, req *dto.SearchStartupReq) ([]*dto.StartupItem, error) {
	docs, err := s.startupSearch.SearchStartups(ctx, req.Keyword, req.Offset(), req.Size)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []*dto.StartupItem{}, nil
	}

	ids := make([]uint64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	startups, err := s.startupRepo.GetStartupsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Startup, len(startups))
	for _, st := range startups {
		byID[st.ID] = st
	}

	items := make([]*dto.StartupItem, 0, len(docs))
	for _, doc := range docs {
		st, ok := byID[doc.ID]
		if !ok {
			// 索引落后于 DB 删除，跳过
			continue
		}
		item, err := buildStartupItem(st)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *StartupServiceImpl) DeleteStartup(ctx context.Context, id, operatorID uint64) error {
	deleted, err := s.startupRepo.DeleteStartup(ctx, id, operatorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrStartupNotFound
	}
	return nil
}

func buildStartupItem(st *model.Startup) (*dto.StartupItem, error) {
	var item dto.StartupItem
	if err := copier.Copy(&item, st); err != nil {
		return nil, err
	}
	item.LogoURL = minio.GetPublicURL(st.LogoURL)
	return &item, nil
}
