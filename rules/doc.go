/*
Package rules adapts external primitive validators into chainable checks.

Primitives come from two libraries. Most are go-playground/validator tags,
exposed under camelCase names:

	isEmail isUrl isIP isIPv4 isIPv6 isAlpha isAlphanumeric isHexadecimal
	isHexColor isInt isLowercase isUppercase
	notNull isNull notEmpty isUUID isUUIDv3 isUUIDv4 isUUIDv5 isCreditCard
	isDate equals contains notContains isIn notIn min max isAfter isBefore
	len (length)

The rest come from go-validator, under their tag names:

	intid uuid4 url enum cenum comparenow nonzero

A few are defined here, because the libraries get them wrong for forms
or they need their own argument handling:

	isNumeric isDecimal (isFloat) regex (is) notRegex (not) required

Every rule has a Shape which says where its message argument goes.
For example, isEmail("bad %s") has the message first,
equals("abc", "bad %s") has one value first,
and len(2, 10, "bad %s") has two values first.
Anything before the message is passed through to the primitive.

Bind builds a Check from a rule name and its arguments.
Checks skip absent values (except required, which exists to catch them),
and report a *Failure with the caller's message,
the rule's default message, or the primitive's own error text, in that order.

Misusing a rule (an unknown name, a non-string message, missing or malformed arguments)
is a *ConfigError. Bind returns it; validator chains panic with it,
since a malformed chain is a programming error and not an invalid record.

New primitives can be added with Registry.Register and are immediately
usable through the generic validator.Validator.Rule method:

	rules.Default().Register(rules.Rule{
		Name:    "isSlug",
		Shape:   rules.MessageOnly,
		Message: "Invalid slug",
		Primitive: func(raw any, _ []any) error {
			if !slugRegexp.MatchString(rules.AsString(raw)) {
				return errors.New("not a slug")
			}
			return nil
		},
	})
	validator.Field("slug").Rule("isSlug")
*/
package rules
