package api

import (
	"github.com/labstack/echo/v4"
)

const cacheControlKey = "cache-control-value"

// WithCacheControl configures the Cache-Control value that SetCacheControl writes.
// An empty value disables it.
func WithCacheControl(value string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if value != "" {
				c.Set(cacheControlKey, value)
			}
			return next(c)
		}
	}
}

// NoStore is WithCacheControl for responses that echo back submitted data.
func NoStore() echo.MiddlewareFunc {
	return WithCacheControl("no-store")
}

// SetCacheControl sets the Cache-Control header configured with WithCacheControl.
// Headers must be written before the body, and should not be written for errors,
// so handlers call this themselves just before writing a successful response.
func SetCacheControl(c echo.Context) {
	if value, ok := c.Get(cacheControlKey).(string); ok {
		c.Response().Header().Set(echo.HeaderCacheControl, value)
	}
}
