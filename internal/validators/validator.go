package validators

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// emailShape is the loose "something@something.something" check used for
// signup and profile updates.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CustomValidator adapts go-playground/validator to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate checks struct tags and reports failures as 400.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Var checks a single value against a tag such as "emailshape" or "datauri".
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.validator.Var(field, tag)
}

// IsEmail reports whether s has the shape of an email address.
func (cv *CustomValidator) IsEmail(s string) bool {
	return cv.Var(s, "emailshape") == nil
}

// IsDataURI reports whether s is a well-formed data URI.
func (cv *CustomValidator) IsDataURI(s string) bool {
	return cv.Var(s, "datauri") == nil
}
