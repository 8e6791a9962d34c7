package cron

import (
	log "log/slog"

	"github.com/pkg/errors"
)

func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return errors.Wrap(err, "register cron jobs")
	}
	mgr.Start()
	log.Info("Cron scheduler started")
	return nil
}
