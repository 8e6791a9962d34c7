package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const (
	slowMongoThreshold = 200 * time.Millisecond
	maxMongoCmdLen     = 1000
)

// NewMongoMonitor 驱动命令级别的日志监视器
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			cmdStr := evt.Command.String()
			if len(cmdStr) > maxMongoCmdLen {
				cmdStr = cmdStr[:maxMongoCmdLen] + "...[truncated]"
			}

			log.InfoContext(ctx, "Mongo Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.Int64("request_id", evt.RequestID),
				log.String("cmd_detail", cmdStr),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			fields := []any{
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
			}

			if evt.Duration > slowMongoThreshold {
				log.WarnContext(ctx, "Mongo Slow", fields...)
			} else {
				log.InfoContext(ctx, "Mongo Success", fields...)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "Mongo Error",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
				log.Any("err", evt.Failure),
			)
		},
	}
}
