package validator

import (
	"strings"

	"github.com/lithictech/go-formcheck/rules"
)

// Record maps field names to submitted values.
// A missing key is an absent value, and a key holding nil is a null value.
type Record map[string]any

// ConfigError is what chain-building methods panic with when they are misused.
type ConfigError = rules.ConfigError

// Validator is an ordered chain of checks for one field.
// Build it fully before calling Run; after that it is safe
// to Run concurrently and to reuse across records.
type Validator struct {
	registry *rules.Registry
	name     string
	label    string
	checks   []rules.Check
}

// Field starts a chain for the named field, using the default rule registry.
// label is used in messages in place of %s, and defaults to name.
func Field(name string, label ...string) *Validator {
	return FieldWith(rules.Default(), name, label...)
}

// FieldWith is Field using rules from reg.
func FieldWith(reg *rules.Registry, name string, label ...string) *Validator {
	v := &Validator{registry: reg, name: name, label: name}
	if len(label) > 0 && label[0] != "" {
		v.label = label[0]
	}
	return v
}

func (v *Validator) Name() string {
	return v.name
}

func (v *Validator) Label() string {
	return v.label
}

// Extend appends check to the chain.
func (v *Validator) Extend(check rules.Check) *Validator {
	v.checks = append(v.checks, check)
	return v
}

// Rule appends the named registry rule, passing args through rules.Registry.Bind.
// It panics with a *ConfigError if the rule does not exist or args are malformed.
func (v *Validator) Rule(name string, args ...any) *Validator {
	check, err := v.registry.Bind(name, args...)
	if err != nil {
		panic(err)
	}
	return v.Extend(check)
}

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors runs every check against the field's value in rec,
// in the order they were added, and returns one FieldError per failure.
func (v *Validator) Errors(rec Record) []FieldError {
	raw, present := rec[v.name]
	value := rules.Value{Raw: raw, Present: present}
	var result []FieldError
	for _, check := range v.checks {
		if err := check(value); err != nil {
			result = append(result, FieldError{Field: v.name, Label: v.label, Message: v.format(err)})
		}
	}
	return result
}

// Run is Errors but only returns the messages.
// It returns nil if every check passed.
func (v *Validator) Run(rec Record) []string {
	errs := v.Errors(rec)
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return messages
}

// Only the first %s is replaced.
func (v *Validator) format(err error) string {
	return strings.Replace(err.Error(), "%s", v.label, 1)
}
