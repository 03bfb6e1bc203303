package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/logctx"
)

// StdContext returns a context.Context for code that should not know about echo,
// like form validation. It is derived from the request's context,
// and carries the request's trace id and logger.
func StdContext(c echo.Context) context.Context {
	cc := context.WithValue(c.Request().Context(), logctx.RequestTraceIdKey, TraceId(c))
	return logctx.WithLogger(cc, Logger(c))
}
