// Command formcheckd serves signup form validation over HTTP.
// It is configured with FORMCHECK_* environment variables.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lithictech/go-formcheck/logctx"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := LoadConfig(environ())
	if err != nil {
		logctx.UnconfiguredLogger().WithError(err).Fatal("config_error")
	}
	logger, err := logctx.NewLogger(logctx.NewLoggerInput{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Fields: logrus.Fields{"app": "formcheckd", "version": version},
	})
	if err != nil {
		logctx.UnconfiguredLogger().WithError(err).Fatal("logger_error")
	}
	logger.Logger.AddHook(logctx.NewTracingHook())

	e := NewServer(cfg, logger)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("server_starting")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server_error")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server_shutdown_error")
	}
	logger.Info("server_stopped")
}

func environ() map[string]string {
	m := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}
