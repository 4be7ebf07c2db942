package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report JSON field names so messages match what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	messages := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages[field] = field + " is required"
		case "email":
			messages[field] = field + " must be a valid email address"
		case "min":
			messages[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			messages[field] = field + " must be at most " + e.Param() + " characters"
		case "gt":
			messages[field] = field + " must be greater than " + e.Param()
		case "gte":
			messages[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			messages[field] = field + " must be less than or equal to " + e.Param()
		case "datetime":
			messages[field] = field + " must be a valid date (YYYY-MM-DD)"
		default:
			messages[field] = field + " is invalid"
		}
	}

	return messages
}
