package form

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/api"
	"github.com/lithictech/go-formcheck/validator"
)

const resultKey = "formcheck.result"

type Config struct {
	Fields []*validator.Validator
	// If true, an invalid form responds with a 422 "invalid_form" error
	// and the handler is not called.
	Reject bool
	// If provided, builds the record instead of RecordFromRequest.
	Record func(echo.Context) (validator.Record, error)
}

func Middleware(fields ...*validator.Validator) echo.MiddlewareFunc {
	return MiddlewareWithConfig(Config{Fields: fields})
}

func MiddlewareWithConfig(cfg Config) echo.MiddlewareFunc {
	if cfg.Record == nil {
		cfg.Record = RecordFromRequest
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rec, err := cfg.Record(c)
			if err != nil {
				return api.NewError(http.StatusBadRequest, "invalid_body", err)
			}
			result := ValidateContext(api.StdContext(c), rec, cfg.Fields...)
			c.Set(resultKey, result)
			if cfg.Reject && !result.IsValid() {
				return api.NewFieldsError("invalid_form", result.Fields)
			}
			return next(c)
		}
	}
}

// Get returns the Result stored by the form middleware,
// or nil if the middleware did not run.
func Get(c echo.Context) *Result {
	r, _ := c.Get(resultKey).(*Result)
	return r
}
