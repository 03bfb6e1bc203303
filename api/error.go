package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type Error struct {
	HTTPStatus int
	ErrorCode  string
	Message    string
	Original   error
	// Fields holds per-field messages, for errors about submitted forms.
	Fields map[string][]string
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s: [%d] %s", e.ErrorCode, e.HTTPStatus, e.Message)
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		s += " (Fields: " + strings.Join(names, ", ") + ")"
	}
	if e.Original != nil {
		s += " (Original: " + e.Original.Error() + ")"
	}
	return s
}

func (e Error) ToMap() map[string]any {
	m := map[string]any{
		"http_status": e.HTTPStatus,
		"error_code":  e.ErrorCode,
		"message":     e.Message,
	}
	if len(e.Fields) > 0 {
		m["fields"] = e.Fields
	}
	if e.Original != nil {
		m["original"] = e.Original.Error()
	}
	return m
}

func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

func NewError(httpStatus int, errorCode string, original ...error) Error {
	e := Error{
		ErrorCode:  errorCode,
		HTTPStatus: httpStatus,
		Message:    http.StatusText(httpStatus),
	}
	if len(original) > 0 {
		e.Original = original[0]
	}
	return e
}

func NewInternalError(original ...error) Error {
	return NewError(http.StatusInternalServerError, "internal_error", original...)
}

// NewFieldsError is a 422 error carrying the messages for each invalid field.
func NewFieldsError(errorCode string, fields map[string][]string, original ...error) Error {
	e := NewError(http.StatusUnprocessableEntity, errorCode, original...)
	e.Fields = fields
	return e
}
