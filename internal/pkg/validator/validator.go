package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	codeRegexp = regexp.MustCompile(`^[A-Za-z]{3}$`)
	phoneChars = regexp.MustCompile(`^\+?[0-9 -]{6,20}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("loccode", func(fl validator.FieldLevel) bool {
		return codeRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneChars.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// Var checks a single value against a tag list.
func Var(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}
