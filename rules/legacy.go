package rules

import (
	"errors"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/lithictech/go-formcheck/kronos"
	govalidator "github.com/rgalanakis/validator"
)

// The go-validator tag vocabulary (intid, uuid4, url, enum, cenum, comparenow, nonzero)
// is exposed under its tag names, next to the camelCase rules from go-playground.

func textErr(s string) govalidator.TextErr {
	return govalidator.TextErr{Err: errors.New(s)}
}

var (
	// ErrInvalidIntID is the error returned when a string is not a valid integer ID.
	ErrInvalidIntID = textErr("not an integer string")
	// ErrInvalidURL is the error returned when a string cannot be parsed as a request URI.
	ErrInvalidURL = textErr("not a valid url")
	// ErrInvalidUUID4 is the error returned when a string cannot be parsed as a UUID4.
	ErrInvalidUUID4 = textErr("not a uuid4 string")
)

const optionalFlag = "opt"

// splitOptional splits param on | and strips a trailing "opt".
//
//	"a|b" -> (["a", "b"], false, nil)
//	"a|opt" -> (["a"], true, nil)
//	"|opt" -> ([], false, <error>)
func splitOptional(param string) ([]string, bool, error) {
	params := strings.Split(param, "|")
	optional := params[len(params)-1] == optionalFlag
	if optional {
		params = params[:len(params)-1]
	}
	if len(params) == 0 || (len(params) == 1 && params[0] == "") {
		return nil, false, govalidator.ErrBadParameter
	}
	return params, optional, nil
}

func enumValidator(fold bool) govalidator.ValidationFunc {
	return func(v interface{}, param string) error {
		choices, optional, err := splitOptional(param)
		if err != nil {
			return err
		}
		s, ok := v.(string)
		if !ok {
			return govalidator.ErrUnsupported
		}
		if s == "" {
			if optional {
				return nil
			}
			return textErr("empty string")
		}
		found := slices.ContainsFunc(choices, func(c string) bool {
			if fold {
				return strings.EqualFold(c, s)
			}
			return c == s
		})
		if !found {
			return textErr("is not one of " + strings.Join(choices, "|"))
		}
		return nil
	}
}

func stringValidator(malformed error, valid func(string) bool) govalidator.ValidationFunc {
	return func(v interface{}, param string) error {
		s, ok := v.(string)
		if !ok {
			return govalidator.ErrUnsupported
		}
		if s == "" && param == optionalFlag {
			return nil
		}
		if s == "" || !valid(s) {
			return malformed
		}
		return nil
	}
}

// A leading 0 is ambiguous (it can mean octal when parsing), so only "0" itself may start with one.
var intIDRegexp = regexp.MustCompile("^(0|[1-9][0-9]*)$")

var uuid4Regexp = regexp.MustCompile("^[0-9a-fA-F-]{32}")

func isRequestURI(s string) bool {
	// url.Parse accepts nearly anything, ParseRequestURI is stricter.
	_, err := url.ParseRequestURI(s)
	return err == nil
}

// compareNowValidator takes "op", "op|unit", and either with a trailing "|opt".
// Both the value and now are truncated to unit before comparing.
func compareNowValidator(getNow NowSource) govalidator.ValidationFunc {
	return func(v interface{}, param string) error {
		t, ok := v.(time.Time)
		if !ok {
			return govalidator.ErrUnsupported
		}
		params, optional, err := splitOptional(param)
		if err != nil {
			return err
		}
		if optional && t.IsZero() {
			return nil
		}
		unit := ""
		if len(params) > 1 {
			unit = params[1]
		}
		now := getNow()
		tt, err := kronos.Truncate(t, unit)
		if err != nil {
			return govalidator.ErrBadParameter
		}
		nt, _ := kronos.Truncate(now.In(t.Location()), unit)
		c := kronos.Compare(tt, nt)
		var problem string
		switch params[0] {
		case "gte":
			if c < 0 {
				problem = "before"
			}
		case "gt":
			if c <= 0 {
				problem = "before or at"
			}
		case "lte":
			if c > 0 {
				problem = "after"
			}
		case "lt":
			if c >= 0 {
				problem = "after or at"
			}
		default:
			return govalidator.ErrBadParameter
		}
		if problem == "" {
			return nil
		}
		return textErr(problem + " now")
	}
}

// NewLegacyValidator returns a go-validator instance with the custom tags registered.
func NewLegacyValidator(getNow NowSource) *govalidator.Validator {
	v := govalidator.NewValidator()
	mustSet := func(name string, fn govalidator.ValidationFunc) {
		if err := v.SetValidationFunc(name, fn); err != nil {
			panic(err)
		}
	}
	mustSet("intid", stringValidator(ErrInvalidIntID, intIDRegexp.MatchString))
	mustSet("uuid4", stringValidator(ErrInvalidUUID4, uuid4Regexp.MatchString))
	mustSet("url", stringValidator(ErrInvalidURL, isRequestURI))
	mustSet("enum", enumValidator(true))
	mustSet("cenum", enumValidator(false))
	mustSet("comparenow", compareNowValidator(getNow))
	return v
}

// isConfigProblem reports whether a go-validator error means the tag was misused,
// rather than the value being invalid.
func isConfigProblem(err error) bool {
	return err == govalidator.ErrBadParameter ||
		err == govalidator.ErrUnknownTag ||
		err == govalidator.ErrUnsupported
}

// legacyTag adapts a go-validator tag into a rule.
// When the rule is OneLeading, args[0] becomes the tag parameter;
// a []string parameter is pipe-joined, so enum choices can be passed as a slice.
// convert prepares the raw value for the validation func.
func legacyTag(v *govalidator.Validator, name, tag string, shape Shape, convert func(any) (any, error)) Rule {
	rule := Rule{
		Name:  name,
		Shape: shape,
		Primitive: func(raw any, args []any) error {
			val, err := convert(raw)
			if err != nil {
				return err
			}
			tags := tag
			if p, ok := argsAt(args, 0); ok {
				param := strings.Join(AsStrings(p), "|")
				tags += "=" + strings.ReplaceAll(param, ",", `\,`)
			}
			verr := v.Valid(val, tags)
			if verr == nil {
				return nil
			}
			first := verr
			var errs govalidator.ErrorArray
			if errors.As(verr, &errs) && len(errs) > 0 {
				first = errs[0]
			}
			if isConfigProblem(first) {
				panic(NewConfigError(name, first))
			}
			return first
		},
	}
	if shape == OneLeading {
		rule.CheckArgs = requireArgs(1)
	}
	return rule
}

func stringValue(raw any) (any, error) {
	return AsString(raw), nil
}

func timeValue(raw any) (any, error) {
	return AsTime(raw)
}

func rawValue(raw any) (any, error) {
	return raw, nil
}

func registerLegacy(r *Registry, v *govalidator.Validator) {
	mustRegister(r, legacyTag(v, "intid", "intid", MessageOnly, stringValue))
	mustRegister(r, legacyTag(v, "uuid4", "uuid4", MessageOnly, stringValue))
	mustRegister(r, legacyTag(v, "url", "url", MessageOnly, stringValue))
	mustRegister(r, legacyTag(v, "enum", "enum", OneLeading, stringValue))
	mustRegister(r, legacyTag(v, "cenum", "cenum", OneLeading, stringValue))
	mustRegister(r, legacyTag(v, "comparenow", "comparenow", OneLeading, timeValue))
	mustRegister(r, legacyTag(v, "nonzero", "nonzero", MessageOnly, rawValue))
}
