package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

const slowSQLThreshold = 200 * time.Millisecond

// GormSlogLogger 把 gorm 的日志接到全局 slog 上
type GormSlogLogger struct {
	LogLevel logger.LogLevel
}

func NewGormLogger() *GormSlogLogger {
	return &GormSlogLogger{LogLevel: logger.Info}
}

func (l *GormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormSlogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		slog.InfoContext(ctx, msg, "detail", data)
	}
}

func (l *GormSlogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		slog.WarnContext(ctx, msg, "detail", data)
	}
}

func (l *GormSlogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		slog.ErrorContext(ctx, msg, "detail", data)
	}
}

func (l *GormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	msg := "MySQL " + sqlVerb(sql)

	fields := []any{
		slog.String("sql", sql),
		slog.Duration("latency", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		slog.ErrorContext(ctx, msg+" Error", append(fields, slog.Any("err", err))...)
	case elapsed > slowSQLThreshold:
		slog.WarnContext(ctx, msg+" Slow", fields...)
	default:
		slog.InfoContext(ctx, msg, fields...)
	}
}

// sqlVerb 取语句首词当日志标题，如 SELECT、UPDATE
func sqlVerb(sql string) string {
	if i := strings.IndexByte(sql, ' '); i > 0 {
		return sql[:i]
	}
	if sql != "" {
		return sql
	}
	return "Query"
}
