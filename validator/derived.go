package validator

// Typed shorthands for the registry rules.
// Each one only arranges its arguments for Rule.

func withMessage(message []string, extras ...any) []any {
	if len(message) > 0 {
		return append(extras, message[0])
	}
	return extras
}

func (v *Validator) IsEmail(message ...string) *Validator {
	return v.Rule("isEmail", withMessage(message)...)
}

func (v *Validator) IsURL(message ...string) *Validator {
	return v.Rule("isUrl", withMessage(message)...)
}

func (v *Validator) IsIP(message ...string) *Validator {
	return v.Rule("isIP", withMessage(message)...)
}

func (v *Validator) IsIPv4(message ...string) *Validator {
	return v.Rule("isIPv4", withMessage(message)...)
}

func (v *Validator) IsIPv6(message ...string) *Validator {
	return v.Rule("isIPv6", withMessage(message)...)
}

func (v *Validator) IsAlpha(message ...string) *Validator {
	return v.Rule("isAlpha", withMessage(message)...)
}

func (v *Validator) IsAlphanumeric(message ...string) *Validator {
	return v.Rule("isAlphanumeric", withMessage(message)...)
}

func (v *Validator) IsHexadecimal(message ...string) *Validator {
	return v.Rule("isHexadecimal", withMessage(message)...)
}

func (v *Validator) IsHexColor(message ...string) *Validator {
	return v.Rule("isHexColor", withMessage(message)...)
}

// IsInt accepts an optional minus sign and digits, without leading zeros.
func (v *Validator) IsInt(message ...string) *Validator {
	return v.Rule("isInt", withMessage(message)...)
}

func (v *Validator) IsLowercase(message ...string) *Validator {
	return v.Rule("isLowercase", withMessage(message)...)
}

func (v *Validator) IsUppercase(message ...string) *Validator {
	return v.Rule("isUppercase", withMessage(message)...)
}

// NotNull fails for null and empty values.
func (v *Validator) NotNull(message ...string) *Validator {
	return v.Rule("notNull", withMessage(message)...)
}

// IsNull fails unless the value is null or empty.
func (v *Validator) IsNull(message ...string) *Validator {
	return v.Rule("isNull", withMessage(message)...)
}

// NotEmpty fails for whitespace-only values.
func (v *Validator) NotEmpty(message ...string) *Validator {
	return v.Rule("notEmpty", withMessage(message)...)
}

func (v *Validator) IsUUID(message ...string) *Validator {
	return v.Rule("isUUID", withMessage(message)...)
}

func (v *Validator) IsUUIDv3(message ...string) *Validator {
	return v.Rule("isUUIDv3", withMessage(message)...)
}

func (v *Validator) IsUUIDv4(message ...string) *Validator {
	return v.Rule("isUUIDv4", withMessage(message)...)
}

func (v *Validator) IsUUIDv5(message ...string) *Validator {
	return v.Rule("isUUIDv5", withMessage(message)...)
}

func (v *Validator) IsCreditCard(message ...string) *Validator {
	return v.Rule("isCreditCard", withMessage(message)...)
}

func (v *Validator) IsDate(message ...string) *Validator {
	return v.Rule("isDate", withMessage(message)...)
}

// IsAfter requires a date after date, which may be a time.Time or a parseable string.
// A nil date means now.
func (v *Validator) IsAfter(date any, message ...string) *Validator {
	return v.Rule("isAfter", withMessage(message, date)...)
}

// IsBefore is the opposite of IsAfter.
func (v *Validator) IsBefore(date any, message ...string) *Validator {
	return v.Rule("isBefore", withMessage(message, date)...)
}

func (v *Validator) Equals(value any, message ...string) *Validator {
	return v.Rule("equals", withMessage(message, value)...)
}

func (v *Validator) Contains(substr string, message ...string) *Validator {
	return v.Rule("contains", withMessage(message, substr)...)
}

func (v *Validator) NotContains(substr string, message ...string) *Validator {
	return v.Rule("notContains", withMessage(message, substr)...)
}

func (v *Validator) IsIn(choices []string, message ...string) *Validator {
	return v.Rule("isIn", withMessage(message, choices)...)
}

func (v *Validator) NotIn(choices []string, message ...string) *Validator {
	return v.Rule("notIn", withMessage(message, choices)...)
}

// Min requires a numeric value of at least n.
func (v *Validator) Min(n float64, message ...string) *Validator {
	return v.Rule("min", withMessage(message, n)...)
}

// Max requires a numeric value of at most n.
func (v *Validator) Max(n float64, message ...string) *Validator {
	return v.Rule("max", withMessage(message, n)...)
}

// Len bounds the length of the value in characters.
// A negative max means there is no upper bound.
func (v *Validator) Len(min, max int, message ...string) *Validator {
	return v.Rule("len", withMessage(message, min, max)...)
}

// Length is Len.
func (v *Validator) Length(min, max int, message ...string) *Validator {
	return v.Len(min, max, message...)
}

// IntID requires a non-negative integer string without a leading zero.
func (v *Validator) IntID(message ...string) *Validator {
	return v.Rule("intid", withMessage(message)...)
}

// UUID4 requires 32 hex digits, with or without dashes.
func (v *Validator) UUID4(message ...string) *Validator {
	return v.Rule("uuid4", withMessage(message)...)
}

// RequestURI requires an absolute URI or absolute path.
func (v *Validator) RequestURI(message ...string) *Validator {
	return v.Rule("url", withMessage(message)...)
}

// Enum requires one of choices, case-insensitively.
// A trailing "opt" choice makes the empty string valid.
func (v *Validator) Enum(choices []string, message ...string) *Validator {
	return v.Rule("enum", withMessage(message, choices)...)
}

// CaseEnum is Enum, but case-sensitive.
func (v *Validator) CaseEnum(choices []string, message ...string) *Validator {
	return v.Rule("cenum", withMessage(message, choices)...)
}

// CompareNow compares a date with now, like "gte", "lt|day", or "gt|hour|opt".
func (v *Validator) CompareNow(comparison string, message ...string) *Validator {
	return v.Rule("comparenow", withMessage(message, comparison)...)
}

func (v *Validator) NonZero(message ...string) *Validator {
	return v.Rule("nonzero", withMessage(message)...)
}
