package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Tags we add to go-playground for primitives it does not ship.
const (
	intTag      = "formcheck_int"
	notBlankTag = "formcheck_notblank"
)

var intRegexp = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)$`)

// NewPlayground returns a go-playground validator with our extra tags registered.
func NewPlayground() *validator.Validate {
	v := validator.New()
	mustRegisterTag(v, intTag, func(fl validator.FieldLevel) bool {
		return intRegexp.MatchString(fl.Field().String())
	})
	// The empty string is left to required/notNull;
	// this only rejects whitespace-only input.
	mustRegisterTag(v, notBlankTag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || strings.TrimSpace(s) != ""
	})
	return v
}

func mustRegisterTag(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// go-playground reserves "," and "|" in tags; params must use their hex forms.
var paramEscaper = strings.NewReplacer(",", "0x2C", "|", "0x7C")

func tagWithParam(tag, param string) string {
	return tag + "=" + paramEscaper.Replace(param)
}

// playgroundTag adapts a parameterless go-playground tag,
// validated against the string form of the value.
func playgroundTag(v *validator.Validate, name, tag, message string) Rule {
	return Rule{
		Name:    name,
		Shape:   MessageOnly,
		Message: message,
		Primitive: func(raw any, _ []any) error {
			return v.Var(AsString(raw), tag)
		},
	}
}

// playgroundParamTag adapts a go-playground tag that compares against args[0].
func playgroundParamTag(v *validator.Validate, name, tag, message string) Rule {
	return Rule{
		Name:      name,
		Shape:     OneLeading,
		Message:   message,
		CheckArgs: requireArgs(1),
		Primitive: func(raw any, args []any) error {
			return v.Var(AsString(raw), tagWithParam(tag, AsString(args[0])))
		},
	}
}

var errInDisallowedList = errors.New("value is one of the disallowed choices")

func oneOfParam(choices []string) string {
	quoted := make([]string, 0, len(choices))
	for _, c := range choices {
		if strings.ContainsAny(c, " \t") {
			c = "'" + c + "'"
		}
		quoted = append(quoted, c)
	}
	return tagWithParam("oneof", strings.Join(quoted, " "))
}

func playgroundOneOf(v *validator.Validate, name string, negate bool) Rule {
	return Rule{
		Name:      name,
		Shape:     OneLeading,
		Message:   "Unexpected value or invalid argument",
		CheckArgs: requireArgs(1),
		Primitive: func(raw any, args []any) error {
			err := v.Var(AsString(raw), oneOfParam(AsStrings(args[0])))
			if !negate {
				return err
			}
			if err == nil {
				return errInDisallowedList
			}
			return nil
		},
	}
}

var errNotANumber = errors.New("not a number")

// playgroundBound compares the numeric value of the input against args[0].
func playgroundBound(v *validator.Validate, name, tag string) Rule {
	return Rule{
		Name:      name,
		Shape:     OneLeading,
		Message:   "Invalid number",
		CheckArgs: requireFloatArgs(1),
		Primitive: func(raw any, args []any) error {
			f, ok := AsFloat(raw)
			if !ok {
				return errNotANumber
			}
			bound, _ := AsFloat(args[0])
			return v.Var(f, tag+"="+strconv.FormatFloat(bound, 'f', -1, 64))
		},
	}
}

var (
	errTooShort = errors.New("String is too small")
	errTooLong  = errors.New("String is too large")
)

// playgroundLength checks rune length against a minimum and an optional maximum.
// There is no default message so that the primitive can say which bound failed.
func playgroundLength(v *validator.Validate, name string) Rule {
	return Rule{
		Name:  name,
		Shape: TwoLeading,
		CheckArgs: func(args []any) error {
			if len(args) == 0 {
				return ErrMissingArgument
			}
			if _, ok := AsFloat(args[0]); !ok {
				return errors.Errorf("min length %v is not a number", args[0])
			}
			if max, ok := argsAt(args, 1); ok {
				if _, isnum := AsFloat(max); !isnum {
					return errors.Errorf("max length %v is not a number", max)
				}
			}
			return nil
		},
		Primitive: func(raw any, args []any) error {
			s := AsString(raw)
			min, _ := AsFloat(args[0])
			if v.Var(s, "min="+strconv.Itoa(int(min))) != nil {
				return errTooShort
			}
			if maxArg, ok := argsAt(args, 1); ok {
				max, _ := AsFloat(maxArg)
				if max >= 0 && v.Var(s, "max="+strconv.Itoa(int(max))) != nil {
					return errTooLong
				}
			}
			return nil
		},
	}
}

var errNotADate = errors.New("Not a date")

func dateRule(name string) Rule {
	return Rule{
		Name:    name,
		Shape:   MessageOnly,
		Message: "Not a date",
		Primitive: func(raw any, _ []any) error {
			if _, err := AsTime(raw); err != nil {
				return errNotADate
			}
			return nil
		},
	}
}

// dateComparison checks the value is after (dir=1) or before (dir=-1)
// args[0], which defaults to now.
func dateComparison(name string, dir int, getNow NowSource) Rule {
	return Rule{
		Name:    name,
		Shape:   OneLeading,
		Message: "Invalid date",
		CheckArgs: func(args []any) error {
			if ref, ok := argsAt(args, 0); ok {
				if _, err := AsTime(ref); err != nil {
					return err
				}
			}
			return nil
		},
		Primitive: func(raw any, args []any) error {
			t, err := AsTime(raw)
			if err != nil {
				return errNotADate
			}
			ref := getNow()
			if refArg, ok := argsAt(args, 0); ok {
				ref, _ = AsTime(refArg)
			}
			if dir > 0 && !t.After(ref) {
				return errors.New("date is not after " + ref.Format(time.RFC3339))
			}
			if dir < 0 && !t.Before(ref) {
				return errors.New("date is not before " + ref.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func registerPlayground(r *Registry, v *validator.Validate, getNow NowSource) {
	tags := []struct{ name, tag, message string }{
		{"isEmail", "email", "Invalid email"},
		{"isUrl", "url", "Invalid URL"},
		{"isIP", "ip", "Invalid IP"},
		{"isIPv4", "ipv4", "Invalid IP"},
		{"isIPv6", "ipv6", "Invalid IP"},
		{"isAlpha", "alpha", "Invalid characters"},
		{"isAlphanumeric", "alphanum", "Invalid characters"},
		{"isHexadecimal", "hexadecimal", "Invalid hexadecimal"},
		{"isHexColor", "hexcolor", "Invalid hexcolor"},
		{"isInt", intTag, "Invalid integer"},
		{"isLowercase", "lowercase", "Invalid characters"},
		{"isUppercase", "uppercase", "Invalid characters"},
		{"notNull", "required", "Invalid characters"},
		{"isNull", "isdefault", "Invalid characters"},
		{"notEmpty", notBlankTag, "Invalid characters"},
		{"isUUID", "uuid", "Not a UUID"},
		{"isUUIDv3", "uuid3", "Not a UUID"},
		{"isUUIDv4", "uuid4", "Not a UUID"},
		{"isUUIDv5", "uuid5", "Not a UUID"},
		{"isCreditCard", "credit_card", "Invalid credit card number"},
	}
	for _, t := range tags {
		mustRegister(r, playgroundTag(v, t.name, t.tag, t.message))
	}
	mustRegister(r, playgroundParamTag(v, "equals", "eq", "Not equal"))
	mustRegister(r, playgroundParamTag(v, "contains", "contains", "Invalid characters"))
	mustRegister(r, playgroundParamTag(v, "notContains", "excludes", "Invalid characters"))
	mustRegister(r, playgroundOneOf(v, "isIn", false))
	mustRegister(r, playgroundOneOf(v, "notIn", true))
	mustRegister(r, playgroundBound(v, "min", "gte"))
	mustRegister(r, playgroundBound(v, "max", "lte"))
	mustRegister(r, playgroundLength(v, "len"))
	mustRegister(r, dateRule("isDate"))
	mustRegister(r, dateComparison("isAfter", 1, getNow))
	mustRegister(r, dateComparison("isBefore", -1, getNow))
	mustAlias(r, "length", "len")
}
