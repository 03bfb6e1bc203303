package rules

import (
	"time"
)

// NowSource returns the current time. Tests swap it out to pin "now".
type NowSource func() time.Time

// NewBuiltinRegistry returns a registry with every go-playground
// and go-validator backed rule registered, plus the numeric, decimal,
// pattern, and required rules defined in this package.
func NewBuiltinRegistry(getNow NowSource) *Registry {
	r := NewRegistry()
	registerPlayground(r, NewPlayground(), getNow)
	registerLegacy(r, NewLegacyValidator(getNow))
	registerCorrected(r)
	return r
}

var globalRegistry *Registry

func init() {
	globalRegistry = NewBuiltinRegistry(time.Now)
}

// Default returns the process-wide registry.
// Rules registered on it become available to every chain built with validator.Field.
func Default() *Registry {
	return globalRegistry
}

func mustRegister(r *Registry, rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

func mustAlias(r *Registry, alias, name string) {
	if err := r.Alias(alias, name); err != nil {
		panic(err)
	}
}
