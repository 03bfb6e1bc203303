package validator

import (
	"github.com/lithictech/go-formcheck/rules"
)

// These methods are shorthands for the rules package's numeric, decimal,
// pattern, and required rules, so Rule("isNumeric") and IsNumeric() agree.

var (
	ErrModifiersWithCompiled = rules.ErrModifiersWithCompiled
	ErrBadPattern            = rules.ErrBadPattern
)

// IsNumeric accepts any native number, or a string of an optionally signed
// integer or decimal like "-12", "+3.5", or ".5".
func (v *Validator) IsNumeric(message ...string) *Validator {
	return v.Rule("isNumeric", withMessage(message)...)
}

// IsDecimal accepts a native number with a fractional part,
// or a string with a decimal point and at least one digit after it.
func (v *Validator) IsDecimal(message ...string) *Validator {
	return v.Rule("isDecimal", withMessage(message)...)
}

// IsFloat is IsDecimal.
func (v *Validator) IsFloat(message ...string) *Validator {
	return v.Rule("isFloat", withMessage(message)...)
}

func patternArgs(pattern any, rest []string) []any {
	args := make([]any, 0, len(rest)+1)
	args = append(args, pattern)
	for _, s := range rest {
		args = append(args, s)
	}
	return args
}

// Regex requires the value to match pattern.
// pattern is a *regexp.Regexp, or a string compiled with optional modifiers
// (any of "gimy"). The arguments after pattern are either
// (modifiers, message) or just (message); a lone argument that looks
// like modifiers is taken as modifiers.
// Passing modifiers with a compiled pattern panics with a *ConfigError.
// A null value is matched as the text "null".
func (v *Validator) Regex(pattern any, rest ...string) *Validator {
	return v.Rule("regex", patternArgs(pattern, rest)...)
}

// Is is Regex.
func (v *Validator) Is(pattern any, rest ...string) *Validator {
	return v.Rule("is", patternArgs(pattern, rest)...)
}

// NotRegex requires the value not to match pattern.
// Its arguments are the same as Regex.
func (v *Validator) NotRegex(pattern any, rest ...string) *Validator {
	return v.Rule("notRegex", patternArgs(pattern, rest)...)
}

// Not is NotRegex.
func (v *Validator) Not(pattern any, rest ...string) *Validator {
	return v.Rule("not", patternArgs(pattern, rest)...)
}

// Required fails for absent values, nil, and the empty string.
// It is the only check that looks at absent values.
func (v *Validator) Required(message ...string) *Validator {
	return v.Rule("required", withMessage(message, nil)...)
}

// RequiredWithPlaceholder is Required, but also fails when the value
// equals placeholder, compared by string form (so 0 and "0" are the same).
// It is for forms that prefill a field with hint text.
func (v *Validator) RequiredWithPlaceholder(placeholder any, message ...string) *Validator {
	return v.Rule("required", withMessage(message, placeholder)...)
}
