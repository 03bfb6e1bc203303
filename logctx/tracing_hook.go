package logctx

import (
	"context"

	"github.com/sirupsen/logrus"
)

// NewTracingHook returns a hook that adds the trace and span ids
// from an entry's context (see logrus.Entry.WithContext) to its fields.
func NewTracingHook() *TracingHook {
	return &TracingHook{
		TraceIdLogKey: "trace_id",
		SpanIdLogKey:  "span_id",
		GetTraceId: func(ctx context.Context) any {
			k, t := ActiveTraceId(ctx)
			if k == MissingTraceIdKey {
				return nil
			}
			return t
		},
		GetSpanId: func(ctx context.Context) any {
			return ctx.Value(SpanIdKey)
		},
	}
}

type TracingHook struct {
	TraceIdLogKey string
	SpanIdLogKey  string
	GetTraceId    func(context.Context) any
	GetSpanId     func(context.Context) any
}

var _ logrus.Hook = &TracingHook{}

func (t *TracingHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (t *TracingHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	if tid := t.GetTraceId(entry.Context); tid != nil {
		entry.Data[t.TraceIdLogKey] = tid
	}
	if sid := t.GetSpanId(entry.Context); sid != nil {
		entry.Data[t.SpanIdLogKey] = sid
	}
	return nil
}
