package form_test

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/api"
	. "github.com/lithictech/go-formcheck/api/echoapitest"
	. "github.com/lithictech/go-formcheck/apitest"
	"github.com/lithictech/go-formcheck/form"
	"github.com/lithictech/go-formcheck/validator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/rgalanakis/golangal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("RecordFromRequest", func() {
	var e *echo.Echo

	BeforeEach(func() {
		e = echo.New()
	})

	It("uses query params, with repeated keys as slices", func() {
		req := GetRequest("/", SetQueryParams(map[string]any{"a": "1", "b": []string{"x", "y"}}))
		c, _ := NewContext(e, req)
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(Equal(validator.Record{"a": "1", "b": []string{"x", "y"}}))
	})

	It("uses path params", func() {
		c, _ := NewContext(e, GetRequest("/users/5"))
		c.SetParamNames("id")
		c.SetParamValues("5")
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(HaveKeyWithValue("id", "5"))
	})

	It("uses urlencoded form values over query params", func() {
		req := PostForm("/?a=query&q=1", url.Values{"a": {"form"}, "b": {"2"}})
		c, _ := NewContext(e, req)
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(Equal(validator.Record{"a": "form", "b": "2", "q": "1"}))
	})

	It("uses multipart form values", func() {
		req := PostMultipart("/", url.Values{"a": {"1"}, "b": {"2", "3"}})
		c, _ := NewContext(e, req)
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(Equal(validator.Record{"a": "1", "b": []string{"2", "3"}}))
	})

	It("uses a json object body, keeping numbers and nulls", func() {
		req := PostJSON("/?a=query", map[string]any{"a": "json", "n": 5.5, "z": nil})
		c, _ := NewContext(e, req)
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(HaveKeyWithValue("a", "json"))
		Expect(rec).To(HaveKeyWithValue("n", json.Number("5.5")))
		Expect(rec).To(HaveKeyWithValue("z", BeNil()))
	})

	It("ignores an empty json body", func() {
		req := NewRequest("POST", "/", nil, JsonReq())
		c, _ := NewContext(e, req)
		rec, err := form.RecordFromRequest(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec).To(BeEmpty())
	})

	It("errors for a json body that is not an object", func() {
		req := NewRequest("POST", "/", []byte("[1, 2]"), JsonReq())
		c, _ := NewContext(e, req)
		_, err := form.RecordFromRequest(c)
		Expect(err).To(MatchError(ContainSubstring("decoding json body")))
	})
})

var _ = Describe("Middleware", func() {
	var e *echo.Echo
	var logger *logrus.Logger
	var logHook *test.Hook
	var fields []*validator.Validator

	BeforeEach(func() {
		logger, logHook = test.NewNullLogger()
		e = api.New(api.Config{Logger: logger.WithFields(nil)})
		fields = []*validator.Validator{
			validator.Field("email").Required().IsEmail(),
			validator.Field("age", "Age").IsInt("%s must be a whole number"),
		}
	})

	handler := func(c echo.Context) error {
		r := form.Get(c)
		return c.JSON(http.StatusOK, map[string]any{"valid": r.IsValid(), "errors": r.Errors})
	}

	It("stores the result for the handler", func() {
		e.POST("/signup", handler, form.Middleware(fields...))
		rr := Serve(e, PostJSON("/signup", map[string]any{"email": "a@b.co", "age": "x"}))
		Expect(rr).To(HaveResponseCode(200))
		Expect(rr).To(HaveJsonBody(And(
			HaveKeyWithValue("valid", false),
			HaveKeyWithValue("errors", ConsistOf("Age must be a whole number")),
		)))
	})

	It("passes valid forms through", func() {
		e.POST("/signup", handler, form.Middleware(fields...))
		rr := Serve(e, PostForm("/signup", url.Values{"email": {"a@b.co"}, "age": {"20"}}))
		Expect(rr).To(HaveResponseCode(200))
		Expect(rr).To(HaveJsonBody(HaveKeyWithValue("valid", true)))
	})

	It("logs invalid forms with the request logger", func() {
		e.POST("/signup", handler, form.Middleware(fields...))
		Expect(Serve(e, PostJSON("/signup", map[string]any{}))).To(HaveResponseCode(200))
		var messages []string
		for _, entry := range logHook.AllEntries() {
			messages = append(messages, entry.Message)
		}
		Expect(messages).To(ContainElement("form_invalid"))
		Expect(messages).To(ContainElement("request_finished"))
	})

	It("can reject invalid forms with the field messages", func() {
		e.POST("/signup", handler, form.MiddlewareWithConfig(form.Config{Fields: fields, Reject: true}))
		rr := Serve(e, PostJSON("/signup", map[string]any{"age": 1.5}))
		Expect(rr).To(HaveResponseCode(422))
		Expect(rr).To(HaveJsonBody(And(
			HaveKeyWithValue("error_code", "invalid_form"),
			HaveKeyWithValue("fields", And(
				HaveKeyWithValue("email", ConsistOf("email is a required field")),
				HaveKeyWithValue("age", ConsistOf("Age must be a whole number")),
			)),
		)))
	})

	It("responds 400 for a body that cannot be read", func() {
		e.POST("/signup", handler, form.Middleware(fields...))
		rr := Serve(e, NewRequest("POST", "/signup", []byte("{"), JsonReq()))
		Expect(rr).To(HaveResponseCode(400))
		Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", "invalid_body")))
	})

	It("can use a custom record builder", func() {
		e.GET("/check", handler, form.MiddlewareWithConfig(form.Config{
			Fields: fields,
			Record: func(echo.Context) (validator.Record, error) {
				return validator.Record{"email": "a@b.co"}, nil
			},
		}))
		rr := Serve(e, GetRequest("/check"))
		Expect(rr).To(HaveJsonBody(HaveKeyWithValue("valid", true)))
	})

	It("returns nil from Get when the middleware did not run", func() {
		c, _ := NewContext(e, GetRequest("/"))
		Expect(form.Get(c)).To(BeNil())
	})
})
