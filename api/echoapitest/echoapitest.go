// Package echoapitest runs requests through an echo app in tests.
package echoapitest

import (
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
)

// Serve runs req through e and returns the recorded response.
func Serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

// NewContext returns an echo context for req, for testing middleware and handlers directly.
func NewContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}
