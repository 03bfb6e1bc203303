package api

import (
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/logctx"
)

const TraceIdHeader = "Trace-Id"

// TraceIdRequestHeaders are checked in order for a caller-supplied trace id.
var TraceIdRequestHeaders = []string{
	TraceIdHeader,
	"X-Request-Id",
}

// TraceId returns the trace id for the request.
// The first call for a request takes it from TraceIdRequestHeaders,
// or generates one with logctx.IdProvider.
// It is cached on the echo context and echoed in the Trace-Id response header.
func TraceId(c echo.Context) string {
	key := string(logctx.RequestTraceIdKey)
	if id, ok := c.Get(key).(string); ok {
		return id
	}
	id := ""
	for _, header := range TraceIdRequestHeaders {
		if id = c.Request().Header.Get(header); id != "" {
			break
		}
	}
	if id == "" {
		id = logctx.IdProvider()
	}
	c.Set(key, id)
	c.Response().Header().Set(TraceIdHeader, id)
	return id
}
