/*
Package form validates whole records, and incoming echo requests,
against a set of validator chains.

	signup := form.Middleware(
		validator.Field("email").Required().IsEmail(),
		validator.Field("age", "Age").IsInt().Min(13, "%s must be at least 13"),
	)
	e.POST("/signup", handler, signup)

Inside the handler, form.Get(c) returns the *Result.
Use MiddlewareWithConfig with Reject set to respond with a 422 api.Error
instead of calling the handler when the form is invalid.
*/
package form
