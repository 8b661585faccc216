package logger

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

// DialHook 记录建立连接的事件
func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			slog.ErrorContext(ctx, "Redis Dial Error",
				slog.String("addr", addr),
				slog.Duration("latency", time.Since(start)),
				slog.Any("err", err),
			)
		}
		return conn, err
	}
}

// ProcessHook 记录执行失败的命令
func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if err != nil && err != redis.Nil {
			slog.ErrorContext(ctx, "Redis Command Error",
				slog.String("cmd", cmd.Name()),
				slog.Duration("latency", time.Since(start)),
				slog.Any("err", err),
			)
		}
		return err
	}
}

// ProcessPipelineHook 记录执行失败的管道命令
func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && err != redis.Nil {
			slog.ErrorContext(ctx, "Redis Pipeline Error",
				slog.Int("cmds", len(cmds)),
				slog.Any("err", err),
			)
		}
		return err
	}
}
