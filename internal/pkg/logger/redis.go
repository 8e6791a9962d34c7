package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const slowRedisThreshold = 100 * time.Millisecond

// 不能把参数落盘的命令
var protectedRedisCmds = map[string]struct{}{
	"auth":  {},
	"hello": {},
}

type RedisSlogHook struct{}

func NewRedisLogger() *RedisSlogHook {
	return &RedisSlogHook{}
}

// DialHook 只记录建连失败
func (s *RedisSlogHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

// ProcessHook 记录单条命令的错误和慢查询
func (s *RedisSlogHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		cmdName := cmd.Name()
		args := "[PROTECTED]"
		if _, protected := protectedRedisCmds[cmdName]; !protected {
			args = fmt.Sprint(cmd.Args())
		}

		fields := []any{
			log.String("command", cmdName),
			log.String("args", args),
			log.Duration("latency", elapsed),
		}

		switch {
		case err != nil:
			if redisErrIgnorable(cmdName, err) {
				return err
			}
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		case elapsed > slowRedisThreshold:
			log.WarnContext(ctx, "Redis Slow", fields...)
		}
		return err
	}
}

// ProcessPipelineHook 管道整体只在失败时记录
func (s *RedisSlogHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}

// redisErrIgnorable 空值和客户端 setinfo 不算故障
func redisErrIgnorable(cmdName string, err error) bool {
	if errors.Is(err, redis.Nil) || err.Error() == "ERR no such key" {
		return true
	}
	return cmdName == "client" && strings.Contains(err.Error(), "setinfo")
}
