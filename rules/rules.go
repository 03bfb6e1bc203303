package rules

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Shape describes where a rule expects its trailing message argument.
// Arguments before the message are passed to the primitive.
type Shape int

const (
	// MessageOnly rules take the message as args[0].
	MessageOnly Shape = iota
	// OneLeading rules take a value (comparison value, choices, date) and then the message.
	OneLeading
	// TwoLeading rules take two values (bounds, pattern and modifiers) and then the message.
	TwoLeading
)

func (s Shape) String() string {
	switch s {
	case MessageOnly:
		return "message-only"
	case OneLeading:
		return "one-leading"
	case TwoLeading:
		return "two-leading"
	}
	return "unknown"
}

// Value is a field value as seen by a Check.
// Present is false when the record had no entry for the field at all,
// which is different from an entry holding nil.
type Value struct {
	Raw     any
	Present bool
}

// Of returns a present Value.
func Of(raw any) Value {
	return Value{Raw: raw, Present: true}
}

// Missing returns an absent Value.
func Missing() Value {
	return Value{}
}

// IsAbsent is true when the record had no entry for the field.
func (v Value) IsAbsent() bool {
	return !v.Present
}

// Primitive is an external predicate adapted to a single signature.
// It returns a non-nil error when raw is invalid.
// args are the extra arguments that came before the message.
type Primitive func(raw any, args []any) error

// Check is a single link in a validation chain.
// It returns nil on success, or a *Failure holding the unformatted message.
type Check func(Value) error

// Rule is a named primitive plus how to call it.
type Rule struct {
	Name  string
	Shape Shape
	// Message is the default template, and may contain %s.
	// If empty, the primitive's own error text is used.
	Message   string
	Primitive Primitive
	// CheckArgs, if set, validates the extra arguments when the rule is bound,
	// so malformed chains fail while they are being built.
	CheckArgs func(args []any) error
	// Build, if set, replaces the usual binding for rules whose arguments
	// or absence handling do not fit a Shape. Its error is wrapped in a
	// *ConfigError by Bind, and its Check is used as-is.
	Build func(args []any) (Check, error)
}

// Failure is a validation failure for one check.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Fail returns a failure with the given message template.
func Fail(message string) *Failure {
	return &Failure{Message: message}
}

// ConfigError is a programmer error in how a chain was built,
// like an unknown rule or a bad argument combination.
// It is never reported as a per-record failure.
type ConfigError struct {
	Rule  string
	Cause error
}

func (e *ConfigError) Error() string {
	return "invalid use of rule " + e.Rule + ": " + e.Cause.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError reports misuse of the named rule.
func NewConfigError(rule string, cause error) *ConfigError {
	return &ConfigError{Rule: rule, Cause: cause}
}

var (
	ErrUnknownRule     = errors.New("unknown rule")
	ErrMessageNotText  = errors.New("message argument must be a string")
	ErrMissingArgument = errors.New("missing argument")
	ErrEmptyRuleName   = errors.New("rule name is empty")
	ErrNilPrimitive    = errors.New("rule has no primitive")
)

// Registry is a table of named rules.
// It is safe for concurrent use, though in general rules
// are all registered up front.
type Registry struct {
	mux   sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry. See NewBuiltinRegistry for one with rules.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule, 64)}
}

// Register adds rule, replacing any rule with the same name.
func (r *Registry) Register(rule Rule) error {
	if rule.Name == "" {
		return ErrEmptyRuleName
	}
	if rule.Primitive == nil && rule.Build == nil {
		return NewConfigError(rule.Name, ErrNilPrimitive)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.rules[rule.Name] = rule
	return nil
}

// Alias registers the rule called name under alias as well.
func (r *Registry) Alias(alias, name string) error {
	rule, ok := r.Lookup(name)
	if !ok {
		return NewConfigError(name, ErrUnknownRule)
	}
	rule.Name = alias
	return r.Register(rule)
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns every rule name, sorted.
func (r *Registry) Names() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	names := make([]string, 0, len(r.rules))
	for n := range r.rules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bind builds a Check for the named rule.
// args are split according to the rule's Shape:
// the argument at the message position (if any) becomes the failure message,
// and the arguments before it go to the primitive.
//
// The returned Check passes for absent values,
// since absence is the concern of the required check.
// When the primitive rejects a value, the failure message is
// the message argument, or the rule default, or the primitive's error text.
func (r *Registry) Bind(name string, args ...any) (Check, error) {
	rule, ok := r.Lookup(name)
	if !ok {
		return nil, NewConfigError(name, ErrUnknownRule)
	}
	if rule.Build != nil {
		check, err := rule.Build(args)
		if err != nil {
			return nil, NewConfigError(name, err)
		}
		return check, nil
	}
	extras, message, err := splitArgs(rule.Shape, args)
	if err != nil {
		return nil, NewConfigError(name, err)
	}
	if rule.CheckArgs != nil {
		if err := rule.CheckArgs(extras); err != nil {
			return nil, NewConfigError(name, err)
		}
	}
	return func(v Value) error {
		if v.IsAbsent() {
			return nil
		}
		perr := rule.Primitive(v.Raw, extras)
		if perr == nil {
			return nil
		}
		if message != "" {
			return Fail(message)
		}
		if rule.Message != "" {
			return Fail(rule.Message)
		}
		return Fail(perr.Error())
	}, nil
}

func splitArgs(shape Shape, args []any) ([]any, string, error) {
	idx := int(shape)
	if len(args) <= idx {
		return args, "", nil
	}
	extras := args[:idx]
	switch m := args[idx].(type) {
	case nil:
		return extras, "", nil
	case string:
		return extras, m, nil
	default:
		return nil, "", errors.Wrapf(ErrMessageNotText, "got %T", m)
	}
}
