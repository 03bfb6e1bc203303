package rules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lithictech/go-formcheck/kronos"
	"github.com/pkg/errors"
)

// AsString renders raw the way primitives see it:
// nil is the empty string, numbers use their shortest form,
// and string slices are comma-joined.
func AsString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		return strings.Join(v, ",")
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(raw)
}

// AsFloat returns raw as a float if it is a number or a numeric string.
func AsFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(AsString(raw)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsStrings flattens a choices argument.
// A single string is split on "|", so "a|b" and []string{"a", "b"} are the same.
func AsStrings(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		res := make([]string, 0, len(v))
		for _, o := range v {
			res = append(res, AsString(o))
		}
		return res
	case string:
		return strings.Split(v, "|")
	}
	return []string{AsString(raw)}
}

// AsTime returns raw as a time.Time if it is one, or parses it with kronos.
func AsTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errors.New("nil time")
		}
		return *v, nil
	}
	return kronos.Parse(AsString(raw))
}

func argsAt(args []any, idx int) (any, bool) {
	if len(args) <= idx {
		return nil, false
	}
	return args[idx], args[idx] != nil
}

func requireFloatArgs(count int) func([]any) error {
	return func(args []any) error {
		if len(args) < count {
			return ErrMissingArgument
		}
		for i := 0; i < count; i++ {
			if _, ok := AsFloat(args[i]); !ok {
				return errors.Errorf("argument %d (%v) is not a number", i, args[i])
			}
		}
		return nil
	}
}

func requireArgs(count int) func([]any) error {
	return func(args []any) error {
		if len(args) < count {
			return ErrMissingArgument
		}
		return nil
	}
}
