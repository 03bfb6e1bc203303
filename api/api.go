/*
Package api sets up an echo server for form validation endpoints,
with /statusz and /healthz endpoints and logging middleware that:

  - Extracts (or adds) a trace ID header to the request and response.
    It can be retrieved with api.TraceId.
  - Uses that trace ID as a field on the request's logrus logger,
    which can be retrieved with api.Logger.
  - Logs each request at a level appropriate for its status code.
  - Recovers from panics, including chains that were misconfigured.
  - Coerces all errors into api.Error, which the error handler marshals as JSON.
*/
package api

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// If not provided, create an echo.New.
	App     *echo.Echo
	Logger  *logrus.Entry
	Logging LoggingConfig
	// Dumps requests and responses at debug level when enabled.
	Debug DebugMiddlewareConfig
	// Origins for echo's CORS middleware.
	// If empty, do not add the middleware.
	CorsOrigins []string
	// Return this from the health endpoint.
	// Defaults to {"o":"k"}.
	HealthResponse map[string]any
	// Defaults to /healthz.
	HealthPath string
	// Return this from the status endpoint.
	// You should provide at least a version.
	StatusResponse map[string]any
	// Defaults to /statusz
	StatusPath string
}

func New(cfg Config) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.HealthResponse == nil {
		cfg.HealthResponse = map[string]any{"o": "k"}
	}
	if cfg.HealthPath == "" {
		cfg.HealthPath = HealthPath
	}
	if cfg.StatusResponse == nil {
		cfg.StatusResponse = map[string]any{"version": "not configured"}
	}
	if cfg.StatusPath == "" {
		cfg.StatusPath = StatusPath
	}
	e := cfg.App
	if e == nil {
		e = echo.New()
	}
	e.Logger.SetOutput(os.Stdout)
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(e)
	e.Use(LoggingMiddlewareWithConfig(cfg.Logger, cfg.Logging))
	e.Use(DebugMiddleware(cfg.Debug))
	if len(cfg.CorsOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CorsOrigins}))
	}
	e.GET(cfg.HealthPath, staticJSON(cfg.HealthResponse))
	e.GET(cfg.StatusPath, staticJSON(cfg.StatusResponse))
	return e
}

func staticJSON(body map[string]any) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, body)
	}
}

const HealthPath = "/healthz"
const StatusPath = "/statusz"
