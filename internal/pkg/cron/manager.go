package cron

import (
	"Atmosphere/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine              *cron.Cron
	counterReconcileJob *job.CounterReconcileJob
	followCountJob      *job.FollowCountJob
	hottestRefreshJob   *job.HottestRefreshJob
}

func NewCronManager(
	counterReconcileJob *job.CounterReconcileJob,
	followCountJob *job.FollowCountJob,
	hottestRefreshJob *job.HottestRefreshJob,
) *Manager {
	return &Manager{
		engine:              cron.New(cron.WithSeconds()),
		counterReconcileJob: counterReconcileJob,
		followCountJob:      followCountJob,
		hottestRefreshJob:   hottestRefreshJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 */5 * * * *", s.counterReconcileJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 */10 * * * *", s.followCountJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 */5 * * * *", s.hottestRefreshJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
