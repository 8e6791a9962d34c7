package job

import (
	"Atmosphere/internal/pkg/logger"
	"Atmosphere/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// HottestRefreshJob 定期重算热度榜并覆盖缓存
type HottestRefreshJob struct {
	trendingService service.TrendingService
}

func NewHottestRefreshJob(trendingService service.TrendingService) *HottestRefreshJob {
	return &HottestRefreshJob{trendingService: trendingService}
}

func (s *HottestRefreshJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID) //nolint:staticcheck

	if err := s.trendingService.RefreshHottest(ctx); err != nil {
		log.ErrorContext(ctx, "refresh hottest list error", "err", err)
		return
	}
	log.InfoContext(ctx, "hottest list refreshed")
}
