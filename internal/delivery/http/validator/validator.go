// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// passwordSpecials is the set of special characters a password must draw from.
const passwordSpecials = "@$!%*?&"

// requestValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata internally.
type requestValidator struct {
	validate *validator.Validate
}

// New creates the echo request validator with the custom rules registered.
func New() echo.Validator {
	v := validator.New()
	// Registration is infallible for a non-nil func; the error return only
	// guards an empty tag name.
	_ = v.RegisterValidation("password", passwordComplexity)

	return &requestValidator{validate: v}
}

// passwordComplexity requires at least one uppercase letter, one lowercase
// letter, one digit and one special character.
func passwordComplexity(fl validator.FieldLevel) bool {
	var upper, lower, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	return upper && lower && digit && special
}

// Validate implements echo.Validator. Failures surface as 400 HTTPErrors so
// the central error handler renders them uniformly.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
