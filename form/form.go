package form

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-formcheck/logctx"
	"github.com/lithictech/go-formcheck/parallel"
	"github.com/lithictech/go-formcheck/stopwatch"
	"github.com/lithictech/go-formcheck/validator"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of validating one record against a set of field chains.
type Result struct {
	// Errors holds every message, in field declaration order.
	Errors []string `json:"errors"`
	// Fields maps a field name to its messages. Valid fields are not present.
	Fields map[string][]string `json:"fields"`

	fieldErrors []validator.FieldError
}

func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Get returns the messages for the named field, or nil if it passed.
func (r *Result) Get(field string) []string {
	return r.Fields[field]
}

// Err returns a *multierror.Error with one validator.FieldError per failed check,
// or nil if the record was valid.
func (r *Result) Err() error {
	if r.IsValid() {
		return nil
	}
	var result *multierror.Error
	for _, fe := range r.fieldErrors {
		result = multierror.Append(result, fe)
	}
	return result
}

// Validate runs every chain against rec.
func Validate(rec validator.Record, fields ...*validator.Validator) *Result {
	r := &Result{Fields: map[string][]string{}}
	for _, f := range fields {
		for _, fe := range f.Errors(rec) {
			r.fieldErrors = append(r.fieldErrors, fe)
			r.Errors = append(r.Errors, fe.Message)
			r.Fields[fe.Field] = append(r.Fields[fe.Field], fe.Message)
		}
	}
	return r
}

// ValidateContext is Validate, but logs the outcome with the logger in ctx.
func ValidateContext(ctx context.Context, rec validator.Record, fields ...*validator.Validator) *Result {
	logger := logctx.Logger(ctx)
	sw := stopwatch.Start(logger, "form_validation")
	r := Validate(rec, fields...)
	opts := stopwatch.FinishOpts{
		Event:  "form_validated",
		Level:  logrus.DebugLevel,
		Fields: logrus.Fields{"form_error_count": len(r.Errors)},
	}
	if !r.IsValid() {
		opts.Event = "form_invalid"
		opts.Level = logrus.InfoLevel
		opts.Fields["form_fields"] = r.Fields
	}
	sw.FinishWith(opts)
	return r
}

// ValidateAll validates each record in recs, at most n at a time.
// Results are in the same order as recs.
// The error is only non-nil if ctx was done before every record was validated.
func ValidateAll(ctx context.Context, recs []validator.Record, n int, fields ...*validator.Validator) ([]*Result, error) {
	results := make([]*Result, len(recs))
	err := parallel.ForEach(ctx, len(recs), n, func(ctx context.Context, idx int) error {
		results[idx] = ValidateContext(ctx, recs[idx], fields...)
		return nil
	})
	return results, err
}
