// Package logctx carries a logrus logger and trace ids through a context.Context.
package logctx

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/ssh/terminal"
)

type IdProviderT func() string

func DefaultIdProvider() string {
	return uuid.New().String()
}

var IdProvider IdProviderT = DefaultIdProvider

type loggerKeyT string

const LoggerKey loggerKeyT = "logger"

type TraceIdKey string

// RequestTraceIdKey is the trace ID key for requests.
const RequestTraceIdKey TraceIdKey = "trace_id"

// JobTraceIdKey is the trace ID key for work done outside a request, like batch validation.
const JobTraceIdKey TraceIdKey = "job_trace_id"

// ProcessTraceIdKey is the trace ID key for the overall process.
const ProcessTraceIdKey TraceIdKey = "process_trace_id"

// MissingTraceIdKey is the key that will be present to indicate tracing is misconfigured.
const MissingTraceIdKey TraceIdKey = "missing_trace_id"

const SpanIdKey TraceIdKey = "span_id"

func UnconfiguredLogger() *logrus.Entry {
	return logrus.StandardLogger().WithField("unconfigured_logger", "true")
}

// WithLogger returns a new context that adds a logger which
// can be retrieved with Logger(Context).
func WithLogger(c context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(c, LoggerKey, logger)
}

// WithTracingLogger extracts the ActiveTraceId and sets it on the context logger.
// In this way you can do WithTracingLogger(WithTraceId(WithLogger(ctx, logger)))
// to get a logger in the context with a trace id.
func WithTracingLogger(c context.Context) context.Context {
	tkey, trace := ActiveTraceId(c)
	logger := Logger(c).WithField(string(tkey), trace)
	return WithLogger(c, logger)
}

func WithTraceId(c context.Context, key TraceIdKey) context.Context {
	return context.WithValue(c, key, IdProvider())
}

func LoggerOrNil(c context.Context) *logrus.Entry {
	logger, _ := c.Value(LoggerKey).(*logrus.Entry)
	return logger
}

func Logger(c context.Context) *logrus.Entry {
	if logger, ok := c.Value(LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	logger := UnconfiguredLogger()
	logger.Warn(
		"Logger called with no logger in context. " +
			"It should always be there to ensure consistent logs from a single logger")
	return logger
}

// ActiveTraceId returns the first valid trace value and type from the given context,
// or MissingTraceIdKey if there is none.
// The returned trace value will always be a string; if the value is string-like it'll be used,
// but if it is not string-like, it will have '!BADVALUE-' prepended.
func ActiveTraceId(c context.Context) (TraceIdKey, string) {
	for _, key := range []TraceIdKey{RequestTraceIdKey, JobTraceIdKey, ProcessTraceIdKey} {
		if tv := c.Value(key); tv != nil {
			return key, toTraceVal(tv)
		}
	}
	return MissingTraceIdKey, "no-trace-id-in-context"
}

func toTraceVal(v any) string {
	if s, ok := asString(v); ok {
		return s
	}
	return fmt.Sprintf("!BADVALUE-%v", v)
}

func asString(o any) (string, bool) {
	if o == nil {
		return "", false
	} else if s, ok := o.(string); ok {
		return s, true
	} else if s, ok := o.(fmt.Stringer); ok {
		return s.String(), true
	}
	r := reflect.ValueOf(o)
	if r.Kind() == reflect.String {
		return r.String(), true
	}
	return "", false
}

// ActiveTraceIdValue returns the value part of ActiveTraceId.
func ActiveTraceIdValue(c context.Context) string {
	_, v := ActiveTraceId(c)
	return v
}

// AddTo returns a context whose logger has fields added.
func AddTo(c context.Context, fields logrus.Fields) context.Context {
	ctx, _ := AddToR(c, fields)
	return ctx
}

// AddToR is AddTo, but also returns the new logger.
func AddToR(c context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	logger := Logger(c).WithFields(fields)
	return WithLogger(c, logger), logger
}

type NewLoggerInput struct {
	// Level is the logging level name, like 'debug' or 'warn'. Defaults to info.
	Level string
	// Format should be empty, 'json' or 'text'.
	// If empty, use 'json' if File is set or this is not a TTY, and 'text' otherwise.
	Format string
	// File is the filename to log to.
	File string
	// Out specifies the stream to log to, and supersedes File.
	// If neither is set, log to os.Stderr for a TTY and os.Stdout otherwise.
	Out io.Writer
	// BuildSha will add "build_sha" to the logger fields, if not empty.
	BuildSha string
	// BuildTime will add "build_time" to the logger fields, if not empty.
	BuildTime string
	// Fields are additional fields to add to the logger.
	Fields logrus.Fields
}

func NewLogger(cfg NewLoggerInput) (*logrus.Entry, error) {
	logger := logrus.New()
	tty := IsTty()
	switch {
	case cfg.Out != nil:
		logger.SetOutput(cfg.Out)
	case cfg.File != "":
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
	case tty:
		logger.SetOutput(os.Stderr)
	default:
		logger.SetOutput(os.Stdout)
	}

	level := logrus.InfoLevel
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = lvl
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	case "":
		if cfg.File != "" || !tty {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	entry := logger.WithFields(cfg.Fields)
	if cfg.BuildSha != "" {
		entry = entry.WithField("build_sha", cfg.BuildSha)
	}
	if cfg.BuildTime != "" {
		entry = entry.WithField("build_time", cfg.BuildTime)
	}
	return entry, nil
}

func IsTty() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}

// WithNullLogger adds the logger from test.NewNullLogger into the given context
// (default c to context.Background). Use the hook to get the log messages.
// See https://github.com/sirupsen/logrus#testing for examples.
func WithNullLogger(c context.Context) (context.Context, *test.Hook) {
	if c == nil {
		c = context.Background()
	}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c2 := WithLogger(c, logger.WithField("testlogger", true))
	return c2, hook
}
