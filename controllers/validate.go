package controllers

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request-body validator shared by the
// controllers. "userpassword" enforces the registration password policy:
// at least one letter and one digit.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		var hasLetter, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})
	return v
}
