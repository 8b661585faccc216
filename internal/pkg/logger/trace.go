package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey Context 与 gin Keys 中存放 trace_id 的键
const TraceIDKey = "trace_id"

// WithTraceID 把 trace_id 挂到 ctx 上，之后经由该 ctx 打出的日志自动携带
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// TraceIDFrom 取出 ctx 上的 trace_id，没有则返回空串
func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// ContextHandler 包装底层 Handler，把 ctx 上的 trace_id 追加为日志属性
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFrom(ctx); traceID != "" {
		r.AddAttrs(log.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}
