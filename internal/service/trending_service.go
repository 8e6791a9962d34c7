package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/minio"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	hottestWindow     = 7 * 24 * time.Hour
	hottestCandidates = 1000
	hottestTop        = 50
	hottestCacheTTL   = 5 * time.Minute
)

// 热度权重：皇冠 10、点赞 8、评论 6、转发 4
const (
	weightCrown   = 10
	weightLike    = 8
	weightComment = 6
	weightShare   = 4
)

type TrendingService interface {
	GetHottest(ctx context.Context, limit int) ([]*dto.HottestItem, error)
	RefreshHottest(ctx context.Context) error
}

type TrendingServiceImpl struct {
	startupRepo    repository.StartupRepo
	engagementRepo repository.EngagementRepo
	commentRepo    repository.CommentRepo
}

func NewTrendingService(
	startupRepo repository.StartupRepo,
	engagementRepo repository.EngagementRepo,
	commentRepo repository.CommentRepo,
) TrendingService {
	return &TrendingServiceImpl{
		startupRepo:    startupRepo,
		engagementRepo: engagementRepo,
		commentRepo:    commentRepo,
	}
}

// GetHottest 热度榜优先读缓存，未命中时现算并回填
func (s *TrendingServiceImpl) GetHottest(ctx context.Context, limit int) ([]*dto.HottestItem, error) {
	if limit <= 0 || limit > hottestTop {
		limit = hottestTop
	}

	cached, err := redis.GetValue(ctx, consts.StartupHottestKey+"list")
	if err == nil && cached != "" {
		var items []*dto.HottestItem
		if err = json.Unmarshal([]byte(cached), &items); err == nil {
			if len(items) > limit {
				items = items[:limit]
			}
			return items, nil
		}
	}

	items, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, items)

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// RefreshHottest 定时任务入口，重算并覆盖缓存
func (s *TrendingServiceImpl) RefreshHottest(ctx context.Context) error {
	items, err := s.compute(ctx)
	if err != nil {
		return err
	}
	s.cache(ctx, items)
	return nil
}

// compute 按 7 天窗口内的加权互动量排序
func (s *TrendingServiceImpl) compute(ctx context.Context) ([]*dto.HottestItem, error) {
	since := time.Now().Add(-hottestWindow)

	ids, err := s.candidates(ctx, since)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*dto.HottestItem{}, nil
	}

	engCounts, err := s.engagementRepo.WindowCounts(ctx, model.TargetStartup, ids, since)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.WindowCounts(ctx, ids, since)
	if err != nil {
		return nil, err
	}

	scores := make(map[uint64]int64, len(ids))
	for _, id := range ids {
		counts := engCounts[id]
		score := counts[model.EngageCrown]*weightCrown +
			counts[model.EngageLike]*weightLike +
			commentCounts[id]*weightComment +
			counts[model.EngageShare]*weightShare
		if score > 0 {
			scores[id] = score
		}
	}
	if len(scores) == 0 {
		return []*dto.HottestItem{}, nil
	}

	scored := make([]uint64, 0, len(scores))
	for id := range scores {
		scored = append(scored, id)
	}
	startups, err := s.startupRepo.GetStartupsByIDs(ctx, scored)
	if err != nil {
		return nil, err
	}

	// 同分按上线时间新的在前
	sort.Slice(startups, func(i, j int) bool {
		si, sj := scores[startups[i].ID], scores[startups[j].ID]
		if si != sj {
			return si > sj
		}
		return launchTime(startups[i]).After(launchTime(startups[j]))
	})
	if len(startups) > hottestTop {
		startups = startups[:hottestTop]
	}

	items := make([]*dto.HottestItem, 0, len(startups))
	for _, st := range startups {
		item := &dto.HottestItem{Score: scores[st.ID]}
		if err = copier.Copy(&item.StartupItem, st); err != nil {
			return nil, err
		}
		item.LogoURL = minio.GetPublicURL(st.LogoURL)
		items = append(items, item)
	}
	return items, nil
}

// candidates 合并三路候选：窗口内上线或资料有更新的公司、被互动过的公司、有新评论的公司。
// 计数回写不动 updated_at，后两路保证只靠互动翻红的老公司也能进榜。
func (s *TrendingServiceImpl) candidates(ctx context.Context, since time.Time) ([]uint64, error) {
	recent, err := s.startupRepo.RecentStartupIDs(ctx, since, hottestCandidates)
	if err != nil {
		return nil, err
	}
	engaged, err := s.engagementRepo.ActiveTargetIDs(ctx, model.TargetStartup, since, hottestCandidates)
	if err != nil {
		return nil, err
	}
	commented, err := s.commentRepo.ActiveStartupIDs(ctx, since, hottestCandidates)
	if err != nil {
		return nil, err
	}

	total := len(recent) + len(engaged) + len(commented)
	seen := make(map[uint64]struct{}, total)
	ids := make([]uint64, 0, total)
	for _, batch := range [][]uint64{recent, engaged, commented} {
		for _, id := range batch {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			if len(ids) >= hottestCandidates {
				return ids, nil
			}
		}
	}
	return ids, nil
}

func launchTime(st *model.Startup) time.Time {
	if !st.LaunchedAt.IsZero() {
		return st.LaunchedAt
	}
	return st.CreatedAt
}

func (s *TrendingServiceImpl) cache(ctx context.Context, items []*dto.HottestItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, consts.StartupHottestKey+"list", string(raw), hottestCacheTTL); err != nil {
		log.Warn("cache hottest list failed", "err", err)
	}
}
