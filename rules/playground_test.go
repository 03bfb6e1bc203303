package rules_test

import (
	"regexp"
	"time"

	"github.com/lithictech/go-formcheck/rules"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("builtin rules", func() {
	now := time.Date(2012, 11, 22, 6, 38, 12, 0, time.Local)
	var r *rules.Registry

	BeforeEach(func() {
		r = rules.NewBuiltinRegistry(func() time.Time { return now })
	})

	run := func(name string, raw any, args ...any) error {
		check, err := r.Bind(name, args...)
		Expect(err).ToNot(HaveOccurred())
		return check(rules.Of(raw))
	}

	It("registers the default registry", func() {
		Expect(rules.Default()).ToNot(BeNil())
		Expect(rules.Default().Names()).To(ContainElements("isEmail", "len", "regex", "enum", "comparenow"))
	})

	It("includes aliases", func() {
		_, ok := r.Lookup("isFloat")
		Expect(ok).To(BeTrue())
		rule, ok := r.Lookup("length")
		Expect(ok).To(BeTrue())
		Expect(rule.Shape).To(Equal(rules.TwoLeading))
	})

	DescribeTable("message-only rules",
		func(name string, good, bad any, message string) {
			Expect(run(name, good)).To(Succeed())
			Expect(run(name, bad)).To(MatchError(message))
		},
		Entry("isEmail", "isEmail", "me@dandean.com", "fail", "Invalid email"),
		Entry("isUrl", "isUrl", "http://www.google.com", "fail", "Invalid URL"),
		Entry("isIP", "isIP", "0.0.0.0", "fail", "Invalid IP"),
		Entry("isIPv4", "isIPv4", "10.0.0.1", "::1", "Invalid IP"),
		Entry("isIPv6", "isIPv6", "::1", "10.0.0.1", "Invalid IP"),
		Entry("isAlpha", "isAlpha", "abcde", "123456", "Invalid characters"),
		Entry("isAlphanumeric", "isAlphanumeric", "abc123", "------", "Invalid characters"),
		Entry("isHexadecimal", "isHexadecimal", "ff00", "fg", "Invalid hexadecimal"),
		Entry("isHexColor", "isHexColor", "#fff", "fff0", "Invalid hexcolor"),
		Entry("isInt", "isInt", "-50", "05", "Invalid integer"),
		Entry("isInt with a native number", "isInt", 50, 1.5, "Invalid integer"),
		Entry("isLowercase", "isLowercase", "win", "FAIL", "Invalid characters"),
		Entry("isUppercase", "isUppercase", "WIN", "fail", "Invalid characters"),
		Entry("notNull", "notNull", "win", "", "Invalid characters"),
		Entry("notNull with nil", "notNull", "win", nil, "Invalid characters"),
		Entry("isNull", "isNull", "", "fail", "Invalid characters"),
		Entry("notEmpty", "notEmpty", "", "  \t", "Invalid characters"),
		Entry("isUUID", "isUUID", "feff425d-b10e-4b50-93c3-4a0124481da4", "feff", "Not a UUID"),
		Entry("isUUIDv4", "isUUIDv4", "feff425d-b10e-4b50-93c3-4a0124481da4", "feff425d-b10e-3b50-93c3-4a0124481da4", "Not a UUID"),
		Entry("isCreditCard", "isCreditCard", "4242424242424242", "4242424242424241", "Invalid credit card number"),
		Entry("isDate", "isDate", "2012-11-22", "yesterday", "Not a date"),
	)

	Describe("one-leading rules", func() {
		It("equals compares string forms", func() {
			Expect(run("equals", "abc", "abc")).To(Succeed())
			Expect(run("equals", 5, "5")).To(Succeed())
			Expect(run("equals", "abd", "abc")).To(MatchError("Not equal"))
			Expect(run("equals", "abd", "abc", "no")).To(MatchError("no"))
		})

		It("contains and notContains handle reserved characters", func() {
			Expect(run("contains", "a,b|c", ",b|")).To(Succeed())
			Expect(run("contains", "abc", "x")).To(MatchError("Invalid characters"))
			Expect(run("notContains", "abc", "x")).To(Succeed())
			Expect(run("notContains", "a,c", ",")).To(MatchError("Invalid characters"))
		})

		It("isIn and notIn take a slice or pipe-delimited choices", func() {
			Expect(run("isIn", "b", []string{"a", "b"})).To(Succeed())
			Expect(run("isIn", "a b", []string{"a b", "c"})).To(Succeed())
			Expect(run("isIn", "x", "a|b")).To(MatchError("Unexpected value or invalid argument"))
			Expect(run("notIn", "x", "a|b")).To(Succeed())
			Expect(run("notIn", "a", "a|b")).To(MatchError("Unexpected value or invalid argument"))
		})

		It("min and max compare numerically", func() {
			Expect(run("min", "10", 5)).To(Succeed())
			Expect(run("min", 5, 5)).To(Succeed())
			Expect(run("min", "4.9", 5)).To(MatchError("Invalid number"))
			Expect(run("min", "x", 5)).To(MatchError("Invalid number"))
			Expect(run("max", 5.5, 6)).To(Succeed())
			Expect(run("max", "7", 6)).To(MatchError("Invalid number"))
		})

		It("requires numeric bounds", func() {
			_, err := r.Bind("min", "x")
			Expect(err).To(BeAssignableToTypeOf(&rules.ConfigError{}))
			_, err = r.Bind("max")
			Expect(err).To(MatchError(rules.ErrMissingArgument))
		})

		It("isAfter and isBefore default to now", func() {
			Expect(run("isAfter", "2013-01-01", nil)).To(Succeed())
			Expect(run("isAfter", "2011-01-01", nil)).To(MatchError("Invalid date"))
			Expect(run("isBefore", now.Add(-time.Hour))).To(Succeed())
			Expect(run("isBefore", "2011-01-01", "2010-01-01")).To(MatchError("Invalid date"))
			Expect(run("isBefore", "2011-01-01", "2010-01-01", "too late")).To(MatchError("too late"))
			Expect(run("isAfter", "garbage", nil)).To(MatchError("Invalid date"))
		})

		It("rejects an unparseable reference date", func() {
			_, err := r.Bind("isAfter", "whenever")
			Expect(err).To(BeAssignableToTypeOf(&rules.ConfigError{}))
		})
	})

	Describe("len", func() {
		It("checks minimum and maximum rune counts", func() {
			Expect(run("len", "abc", 2, 4)).To(Succeed())
			Expect(run("len", "a", 2, 4)).To(MatchError("String is too small"))
			Expect(run("len", "abcde", 2, 4)).To(MatchError("String is too large"))
			Expect(run("len", "日本語", 3, 3)).To(Succeed())
		})

		It("has no upper bound when max is missing or negative", func() {
			Expect(run("len", "abcdefgh", 2)).To(Succeed())
			Expect(run("len", "abcdefgh", 2, -1)).To(Succeed())
		})

		It("uses the message argument for either bound", func() {
			Expect(run("length", "a", 2, 4, "%s is the wrong size")).To(MatchError("%s is the wrong size"))
		})

		It("requires a numeric minimum", func() {
			_, err := r.Bind("len")
			Expect(err).To(MatchError(rules.ErrMissingArgument))
			_, err = r.Bind("len", "a", 2)
			Expect(err).To(BeAssignableToTypeOf(&rules.ConfigError{}))
		})
	})

	Describe("regex and notRegex", func() {
		It("match against a string or compiled pattern", func() {
			Expect(run("regex", "abc", "^[a-c]+$")).To(Succeed())
			Expect(run("regex", "ABC", "^[a-c]+$", "i")).To(Succeed())
			Expect(run("regex", "abd", regexp.MustCompile("^[a-c]+$"))).To(MatchError("Invalid characters"))
			Expect(run("notRegex", "abd", "c")).To(Succeed())
			Expect(run("notRegex", "abc", "c", "", "has a c")).To(MatchError("has a c"))
		})

		It("rejects bad patterns and modifiers when bound", func() {
			_, err := r.Bind("regex", "(")
			Expect(err).To(BeAssignableToTypeOf(&rules.ConfigError{}))
			_, err = r.Bind("regex", "a", "q", "message")
			Expect(err).To(MatchError(rules.ErrBadModifiers))
			_, err = r.Bind("regex", 5)
			Expect(err).To(BeAssignableToTypeOf(&rules.ConfigError{}))
		})
	})
})
