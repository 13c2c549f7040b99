package forms

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RegisterForm carries the registration fields. Email is deliberately left
// without a field-level rule: its format is checked separately, after the
// form-level validation passes (see Validator.ValidateEmail).
type RegisterForm struct {
	Name     string `form:"name" validate:"required,min=4,max=25"`
	Username string `form:"username" validate:"required,min=5,max=15"`
	Email    string `form:"email"`
	Password string `form:"password" validate:"required,eqfield=Confirm"`
	Confirm  string `form:"confirm"`
}

// LoginForm carries the login credentials.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// PostForm carries the post fields. Author is defined for completeness but is
// never read by any handler; the author is always taken from the session.
type PostForm struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
	Author  string `form:"author"`
}

// SearchForm carries the search keyword.
type SearchForm struct {
	Keyword string `form:"keyword"`
}

// Validator wraps a shared validator instance and turns validation failures
// into per-field messages suitable for re-rendering a form.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Check validates a form struct and returns a map of field name to error
// message, or nil when the form is valid.
func (v *Validator) Check(form interface{}) map[string]string {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"form": err.Error()}
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = messageFor(e)
	}
	return errorMessages
}

// ValidateEmail checks a single address for an RFC-plausible format. Called by
// the registration handler after the form-level rules have passed.
func (v *Validator) ValidateEmail(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

// messageFor maps a validation failure to a human-readable message.
func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}
