package rules

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ModifiersRegexp matches a string that looks like regex modifier flags.
var ModifiersRegexp = regexp.MustCompile(`^[gimy]+$`)

var ErrBadModifiers = errors.New("modifiers must only contain the flags g, i, m, and y")

// CompilePattern compiles source with modifier flags.
// i and m map to the Go flags of the same name,
// y (sticky) anchors the pattern at the start of input,
// and g has no meaning for a single match so it is accepted and ignored.
func CompilePattern(source, modifiers string) (*regexp.Regexp, error) {
	if modifiers != "" && !ModifiersRegexp.MatchString(modifiers) {
		return nil, errors.Wrap(ErrBadModifiers, modifiers)
	}
	flags := ""
	if strings.Contains(modifiers, "i") {
		flags += "i"
	}
	if strings.Contains(modifiers, "m") {
		flags += "m"
	}
	if strings.Contains(modifiers, "y") {
		source = `\A(?:` + source + `)`
	}
	if flags != "" {
		source = "(?" + flags + ")" + source
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, errors.Wrap(err, "bad pattern")
	}
	return re, nil
}
