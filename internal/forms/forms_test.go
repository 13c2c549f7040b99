package forms_test

import (
	"testing"

	"fuyublog/internal/forms"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidation(t *testing.T) {
	v := forms.NewValidator()

	// Valid form
	form := forms.RegisterForm{
		Name:     "Alice Example",
		Username: "alice01",
		Email:    "alice@example.com",
		Password: "Passw0rd",
		Confirm:  "Passw0rd",
	}
	errs := v.Check(form)
	assert.Nil(t, errs)

	// Name too short
	form.Name = "Al"
	errs = v.Check(form)
	assert.NotNil(t, errs)
	assert.Contains(t, errs, "Name")
	form.Name = "Alice Example"

	// Username too short
	form.Username = "al"
	errs = v.Check(form)
	assert.Contains(t, errs, "Username")

	// Username too long
	form.Username = "averyverylongusername"
	errs = v.Check(form)
	assert.Contains(t, errs, "Username")
	form.Username = "alice01"

	// Password and confirmation mismatch
	form.Confirm = "different"
	errs = v.Check(form)
	assert.Contains(t, errs, "Password")
	assert.Equal(t, "Passwords do not match", errs["Password"])
	form.Confirm = "Passw0rd"

	// Missing password
	form.Password = ""
	errs = v.Check(form)
	assert.Contains(t, errs, "Password")
}

func TestValidateEmail(t *testing.T) {
	v := forms.NewValidator()

	assert.NoError(t, v.ValidateEmail("alice@example.com"))
	assert.Error(t, v.ValidateEmail("not-an-email"))
	assert.Error(t, v.ValidateEmail(""))
	assert.Error(t, v.ValidateEmail("missing@tld@double.com"))
}

func TestPostFormValidation(t *testing.T) {
	v := forms.NewValidator()

	form := forms.PostForm{Title: "Hello", Content: "World"}
	assert.Nil(t, v.Check(form))

	form.Title = ""
	errs := v.Check(form)
	assert.Contains(t, errs, "Title")

	form = forms.PostForm{Title: "Hello"}
	errs = v.Check(form)
	assert.Contains(t, errs, "Content")
}
