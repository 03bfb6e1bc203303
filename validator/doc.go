/*
Package validator builds per-field validation chains.

A chain is started with Field and extended with rule methods,
each returning the same *Validator so calls can be chained:

	email := validator.Field("email", "Email").Required().IsEmail("%s is not an email")
	age := validator.Field("age").IsInt().Min(13, "You must be at least 13")

Run checks one record and returns a message for every failed check,
in the order the checks were added, or nil if the value is valid.
Messages may contain %s, and its first occurrence is replaced with the field's label.

	email.Run(validator.Record{"email": "nope"}) // ["Email is not an email"]

Only Required looks at absent fields. Every other check passes when the
record has no entry for the field, so optional fields only need their
format checks, and required fields need Required as well.

Most methods are shorthands for rules in the rules package,
and any rule registered there can be chained with Rule:

	validator.Field("slug").Rule("isSlug", "%s must be a slug")

The numeric, decimal, pattern, and required methods use rules that replace
the libraries' versions, so Rule("isNumeric") and IsNumeric() are the same check.

Building a chain with an unknown rule, a malformed pattern,
or a non-string message panics with a *ConfigError.
Chains are usually built once at init and reused, so the panic surfaces immediately.
*/
package validator
