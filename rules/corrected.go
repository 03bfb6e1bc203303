package rules

import (
	"encoding/json"
	"math"
	"regexp"

	"github.com/pkg/errors"
)

// The library's own numeric tags reject decimals ("number")
// or accept integers as floats ("numeric"), so these rules are ours.

var (
	numericRegexp = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+$`)
	decimalRegexp = regexp.MustCompile(`^[-+]?[0-9]*\.[0-9]+$`)
)

var (
	ErrModifiersWithCompiled = errors.New("modifiers can only be passed in if pattern is a string")
	ErrBadPattern            = errors.New("pattern must be a string or *regexp.Regexp")
)

var (
	errNotNumeric = errors.New("not numeric")
	errNotDecimal = errors.New("not a decimal")
	errRequired   = errors.New("required")
)

// NativeNumber returns raw as a float if it is a Go number type.
// Numeric strings are not native numbers.
func NativeNumber(raw any) (float64, bool) {
	switch raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return AsFloat(raw)
	}
	return 0, false
}

// NumberText returns the text of raw if it is string-like,
// including a json.Number decoded with UseNumber.
func NumberText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return string(v), true
	}
	return "", false
}

// numericRule accepts any native number, or a string of an optionally signed
// integer or decimal like "-12", "+3.5", or ".5".
func numericRule(name string) Rule {
	return Rule{
		Name:    name,
		Shape:   MessageOnly,
		Message: "Invalid number",
		Primitive: func(raw any, _ []any) error {
			if _, ok := NativeNumber(raw); ok {
				return nil
			}
			if s, ok := NumberText(raw); ok && numericRegexp.MatchString(s) {
				return nil
			}
			return errNotNumeric
		},
	}
}

// decimalRule accepts a native number with a nonzero fractional part,
// or a string with a decimal point and at least one digit after it.
func decimalRule(name string) Rule {
	return Rule{
		Name:    name,
		Shape:   MessageOnly,
		Message: "Invalid decimal",
		Primitive: func(raw any, _ []any) error {
			if f, ok := NativeNumber(raw); ok {
				if math.IsInf(f, 0) || math.IsNaN(f) || math.Mod(f, 1) == 0 {
					return errNotDecimal
				}
				return nil
			}
			if s, ok := NumberText(raw); ok && decimalRegexp.MatchString(s) {
				return nil
			}
			return errNotDecimal
		},
	}
}

func textArgs(args []any) ([]string, error) {
	result := make([]string, len(args))
	for i, a := range args {
		switch s := a.(type) {
		case nil:
		case string:
			result[i] = s
		default:
			return nil, errors.Wrapf(ErrMessageNotText, "argument %d is %T", i+1, a)
		}
	}
	return result, nil
}

// ParsePatternArgs resolves (pattern, rest...) into a compiled pattern and a message.
// rest is (modifiers, message) or (message). A lone argument that looks
// like modifiers (see ModifiersRegexp) is modifiers.
// A compiled pattern takes only a message, and anything after it is ignored.
func ParsePatternArgs(pattern any, rest []string) (*regexp.Regexp, string, error) {
	at := func(i int) string {
		if i < len(rest) {
			return rest[i]
		}
		return ""
	}
	switch p := pattern.(type) {
	case *regexp.Regexp:
		if p == nil {
			return nil, "", ErrBadPattern
		}
		if ModifiersRegexp.MatchString(at(0)) {
			return nil, "", ErrModifiersWithCompiled
		}
		return p, at(0), nil
	case string:
		modifiers, message := at(0), at(1)
		if len(rest) == 1 && !ModifiersRegexp.MatchString(rest[0]) {
			modifiers, message = "", rest[0]
		}
		re, err := CompilePattern(p, modifiers)
		if err != nil {
			return nil, "", err
		}
		return re, message, nil
	case nil:
		return nil, "", errors.Wrap(ErrMissingArgument, "pattern")
	}
	return nil, "", errors.Wrapf(ErrBadPattern, "got %T", pattern)
}

// PatternSubject is the text a pattern is matched against.
// A null value is the text "null".
func PatternSubject(raw any) string {
	if raw == nil {
		return "null"
	}
	return AsString(raw)
}

// patternRule compiles its pattern once, when the rule is bound.
func patternRule(name string, negate bool) Rule {
	return Rule{
		Name:    name,
		Shape:   TwoLeading,
		Message: "Invalid characters",
		Build: func(args []any) (Check, error) {
			if len(args) == 0 {
				return nil, errors.Wrap(ErrMissingArgument, "pattern")
			}
			rest, err := textArgs(args[1:])
			if err != nil {
				return nil, err
			}
			re, message, err := ParsePatternArgs(args[0], rest)
			if err != nil {
				return nil, err
			}
			if message == "" {
				message = "Invalid characters"
			}
			return func(v Value) error {
				if v.IsAbsent() {
					return nil
				}
				if re.MatchString(PatternSubject(v.Raw)) == negate {
					return Fail(message)
				}
				return nil
			}, nil
		},
	}
}

// requiredRule takes (placeholder, message). It fails for absent values,
// nil, the empty string, and values whose string form equals a non-nil placeholder.
// It is the only rule that does not skip absent values.
func requiredRule(name string) Rule {
	const defaultMessage = "%s is a required field"
	return Rule{
		Name:      name,
		Shape:     OneLeading,
		Message:   defaultMessage,
		Primitive: blank,
		Build: func(args []any) (Check, error) {
			extras, message, err := splitArgs(OneLeading, args)
			if err != nil {
				return nil, err
			}
			if message == "" {
				message = defaultMessage
			}
			return func(v Value) error {
				if v.IsAbsent() || blank(v.Raw, extras) != nil {
					return Fail(message)
				}
				return nil
			}, nil
		},
	}
}

func blank(raw any, args []any) error {
	if raw == nil {
		return errRequired
	}
	if s, ok := raw.(string); ok && s == "" {
		return errRequired
	}
	if p, ok := argsAt(args, 0); ok && AsString(raw) == AsString(p) {
		return errRequired
	}
	return nil
}

func registerCorrected(r *Registry) {
	mustRegister(r, numericRule("isNumeric"))
	mustRegister(r, decimalRule("isDecimal"))
	mustRegister(r, patternRule("regex", false))
	mustRegister(r, patternRule("notRegex", true))
	mustRegister(r, requiredRule("required"))
	mustAlias(r, "isFloat", "isDecimal")
	mustAlias(r, "is", "regex")
	mustAlias(r, "not", "notRegex")
}
