package rules_test

import (
	"time"

	"github.com/lithictech/go-formcheck/rules"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("go-validator rules", func() {
	var r *rules.Registry
	now := time.Date(2012, 11, 22, 6, 38, 12, 120, time.Local)

	BeforeEach(func() {
		r = rules.NewBuiltinRegistry(func() time.Time { return now })
	})

	expectInvalid := func(name string, raw any, message string, args ...any) {
		check, err := r.Bind(name, args...)
		Expect(err).ToNot(HaveOccurred())
		Expect(check(rules.Of(raw))).To(MatchError(message))
	}

	expectValid := func(name string, raw any, args ...any) {
		check, err := r.Bind(name, args...)
		Expect(err).ToNot(HaveOccurred())
		Expect(check(rules.Of(raw))).To(Succeed())
	}

	Describe("comparenow", func() {
		zeroDay := time.Time{}
		earlierDay := now.Add(-50 * time.Hour)
		today := now
		laterDay := now.Add(50 * time.Hour)

		It("can specify gte now", func() {
			expectInvalid("comparenow", zeroDay, "before now", "gte")
			expectInvalid("comparenow", earlierDay, "before now", "gte")
			expectValid("comparenow", today, "gte")
			expectValid("comparenow", laterDay, "gte")
		})

		It("can specify gt now", func() {
			expectInvalid("comparenow", earlierDay, "before or at now", "gt")
			expectInvalid("comparenow", today, "before or at now", "gt")
			expectValid("comparenow", laterDay, "gt")
		})

		It("can specify lte and lt now", func() {
			expectValid("comparenow", zeroDay, "lte")
			expectValid("comparenow", today, "lte")
			expectInvalid("comparenow", laterDay, "after now", "lte")
			expectValid("comparenow", earlierDay, "lt")
			expectInvalid("comparenow", today, "after or at now", "lt")
		})

		It("can truncate to a unit", func() {
			laterToday := time.Date(2012, 11, 22, 20, 0, 0, 0, time.Local)
			expectInvalid("comparenow", laterToday, "before or at now", "gt|day")
			expectValid("comparenow", laterToday, "gt|hour")
		})

		It("can be optional", func() {
			expectValid("comparenow", zeroDay, "gt||opt")
			expectValid("comparenow", zeroDay, "gt|day|opt")
			expectInvalid("comparenow", today, "before or at now", "gt|day|opt")
		})

		It("parses string dates", func() {
			expectValid("comparenow", "2012-11-23", "gt|day")
			expectInvalid("comparenow", "2012-11-21", "before now", "gte|day")
		})

		It("uses the message argument", func() {
			expectInvalid("comparenow", earlierDay, "%s must be in the future", "gt", "%s must be in the future")
		})

		It("panics with a ConfigError for a bad operator or unit", func() {
			check, err := r.Bind("comparenow", "sometime")
			Expect(err).ToNot(HaveOccurred())
			Expect(func() { _ = check(rules.Of(today)) }).To(PanicWith(BeAssignableToTypeOf(&rules.ConfigError{})))

			check, _ = r.Bind("comparenow", "gt|fortnight")
			Expect(func() { _ = check(rules.Of(today)) }).To(PanicWith(BeAssignableToTypeOf(&rules.ConfigError{})))
		})

		It("requires an operator", func() {
			_, err := r.Bind("comparenow")
			Expect(err).To(MatchError(rules.ErrMissingArgument))
		})
	})

	Describe("intid", func() {
		It("requires an integer-like string (0 or greater)", func() {
			expectInvalid("intid", "1.1", "not an integer string")
			expectInvalid("intid", "-1", "not an integer string")
			expectInvalid("intid", "1a", "not an integer string")
			expectInvalid("intid", "01", "not an integer string")
			expectInvalid("intid", "", "not an integer string")
			expectValid("intid", "1")
			expectValid("intid", "0")
			expectValid("intid", 12)
		})
	})

	Describe("uuid4", func() {
		It("requires a uuid4 formatted string", func() {
			expectValid("uuid4", "feff425d-b10e-4b50-93c3-4a0124481da4")
			expectValid("uuid4", "feff425db10e4b5093c34a0124481da4")
			expectInvalid("uuid4", "zeff425db10e4b5093c34a0124481da4", "not a uuid4 string")
			expectInvalid("uuid4", "feff", "not a uuid4 string")
			expectInvalid("uuid4", "", "not a uuid4 string")
		})
	})

	Describe("url", func() {
		It("requires a parse-able request URI", func() {
			expectInvalid("url", "foo.com", "not a valid url")
			expectInvalid("url", "", "not a valid url")
			expectValid("url", "http://foo.com")
			expectValid("url", "/go/lang")
		})
	})

	Describe("enum", func() {
		It("requires a case-insensitive choice from a list of strings", func() {
			expectValid("enum", "A", "a|opt|c")
			expectValid("enum", "opt", "a|opt|c")
			expectValid("enum", "c", "a|opt|c")
			expectInvalid("enum", "d", "is not one of a|opt|c", "a|opt|c")
			expectInvalid("enum", "", "empty string", "a|opt|c")
		})

		It("accepts choices as a slice", func() {
			expectValid("enum", "B", []string{"a", "b"})
			expectInvalid("enum", "c", "is not one of a|b", []string{"a", "b"})
		})

		It("allows choices containing commas", func() {
			expectValid("enum", "a,b", []string{"a,b", "c"})
		})

		It("can be optional", func() {
			expectValid("enum", "", "a|b|c|opt")
			expectInvalid("enum", "opt", "is not one of a|b|c", "a|b|c|opt")
		})

		It("panics with a ConfigError for empty choices", func() {
			check, _ := r.Bind("enum", "|opt")
			Expect(func() { _ = check(rules.Of("a")) }).To(PanicWith(BeAssignableToTypeOf(&rules.ConfigError{})))
		})
	})

	Describe("cenum", func() {
		It("requires a case-sensitive choice from a list of strings", func() {
			expectInvalid("cenum", "a", "is not one of A|opt|c", "A|opt|c")
			expectValid("cenum", "A", "A|opt|c")
			expectValid("cenum", "opt", "A|opt|c")
			expectInvalid("cenum", "", "empty string", "A|opt|c")
		})

		It("can be optional", func() {
			expectValid("cenum", "", "A|b|opt")
			expectInvalid("cenum", "a", "custom", "A|b|opt", "custom")
		})
	})

	Describe("nonzero", func() {
		It("rejects zero values", func() {
			expectInvalid("nonzero", 0, "zero value")
			expectInvalid("nonzero", "", "zero value")
			expectInvalid("nonzero", nil, "zero value")
			expectValid("nonzero", 1)
			expectValid("nonzero", "x")
		})
	})
})
