package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithictech/go-formcheck/logctx"
	"github.com/sirupsen/logrus"
)

type DebugMiddlewareConfig struct {
	Enabled             bool
	DumpRequestBody     bool
	DumpResponseBody    bool
	DumpRequestHeaders  bool
	DumpResponseHeaders bool
	DumpAll             bool
}

// DebugMiddleware logs request_debug at debug level with the parts of
// the exchange that are enabled. Request headers skip Authorization and Cookie.
func DebugMiddleware(cfg DebugMiddlewareConfig) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	if cfg.DumpAll {
		cfg.DumpRequestHeaders = true
		cfg.DumpRequestBody = true
		cfg.DumpResponseHeaders = true
		cfg.DumpResponseBody = true
	}
	return middleware.BodyDump(func(c echo.Context, reqBody []byte, resBody []byte) {
		fields := logrus.Fields{}
		if cfg.DumpRequestBody {
			fields["debug_request_body"] = string(reqBody)
		}
		if cfg.DumpResponseBody {
			fields["debug_response_body"] = string(resBody)
		}
		if cfg.DumpRequestHeaders {
			fields["debug_request_headers"] = headerToMap(c.Request().Header, "Authorization", "Cookie")
		}
		if cfg.DumpResponseHeaders {
			fields["debug_response_headers"] = headerToMap(c.Response().Header(), "Set-Cookie")
		}
		logctx.Logger(StdContext(c)).WithFields(fields).Debug("request_debug")
	})
}

func headerToMap(h http.Header, skip ...string) map[string]string {
	r := make(map[string]string, len(h))
	for k := range h {
		r[k] = h.Get(k)
	}
	for _, k := range skip {
		delete(r, http.CanonicalHeaderKey(k))
	}
	return r
}
