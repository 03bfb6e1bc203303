package main

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/api"
	"github.com/lithictech/go-formcheck/form"
	"github.com/lithictech/go-formcheck/rules"
	"github.com/lithictech/go-formcheck/validator"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func signupFields() []*validator.Validator {
	return []*validator.Validator{
		validator.Field("email", "Email").Required().IsEmail(),
		validator.Field("username", "Username").
			Required().
			Len(3, 20, "%s must be 3 to 20 characters").
			IsAlphanumeric("%s may only contain letters and digits"),
		validator.Field("age", "Age").IsInt("%s must be a whole number").Min(13, "%s must be at least 13"),
		validator.Field("website", "Website").IsURL(),
		validator.Field("password", "Password").
			Required().
			Regex(`^[a-z0-9!@#$%^&*]{8,}$`, "i", "%s must be at least 8 letters, digits, or symbols"),
	}
}

func NewServer(cfg Config, logger *logrus.Entry) *echo.Echo {
	e := api.New(api.Config{
		Logger:         logger,
		CorsOrigins:    cfg.CorsOrigins,
		Debug:          api.DebugMiddlewareConfig{Enabled: cfg.Debug, DumpAll: true},
		StatusResponse: map[string]any{"version": version},
	})
	fields := signupFields()

	e.GET("/rules", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"rules": rules.Default().Names()})
	})

	e.POST("/signup", func(c echo.Context) error {
		r := form.Get(c)
		return c.JSON(http.StatusOK, map[string]any{"ok": r.IsValid(), "fields": r.Fields})
	}, api.NoStore(), form.MiddlewareWithConfig(form.Config{Fields: fields, Reject: cfg.RejectInvalid}))

	e.POST("/signup/batch", func(c echo.Context) error {
		dec := json.NewDecoder(c.Request().Body)
		dec.UseNumber()
		var recs []validator.Record
		if err := dec.Decode(&recs); err != nil {
			return api.NewError(http.StatusBadRequest, "invalid_body", err)
		}
		results, err := form.ValidateAll(api.StdContext(c), recs, cfg.BatchParallelism, fields...)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]any{"results": results})
	}, api.NoStore())

	return e
}
