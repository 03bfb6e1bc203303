// Package kronos are time utilities.
package kronos

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Layouts are tried in order by Parse.
var Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
}

var ErrUnparseable = errors.New("not a recognized date")

// Parse parses s with the first of Layouts that accepts it.
// Layouts without a zone parse in the local timezone.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	for _, layout := range Layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrap(ErrUnparseable, s)
}

// Compare returns -1 if t is before u, 1 if t is after u, and 0 if they are the same instant.
func Compare(t, u time.Time) int {
	if t.Before(u) {
		return -1
	}
	if t.After(u) {
		return 1
	}
	return 0
}

var ErrUnknownUnit = errors.New("unknown time unit")

// Truncate rounds t down to the start of the given calendar unit,
// in t's location. Valid units are second, minute, hour, day, month, and year.
// An empty unit returns t unchanged.
func Truncate(t time.Time, unit string) (time.Time, error) {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()
	switch unit {
	case "":
		return t, nil
	case "second":
		return time.Date(y, mo, d, h, mi, s, 0, loc), nil
	case "minute":
		return time.Date(y, mo, d, h, mi, 0, 0, loc), nil
	case "hour":
		return time.Date(y, mo, d, h, 0, 0, 0, loc), nil
	case "day":
		return time.Date(y, mo, d, 0, 0, 0, 0, loc), nil
	case "month":
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc), nil
	case "year":
		return time.Date(y, 1, 1, 0, 0, 0, 0, loc), nil
	}
	return t, errors.Wrap(ErrUnknownUnit, unit)
}
