package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the request against its struct tags.
func (r *AnalyzeRequest) Validate() error {
	return ValidationError(validate.Struct(r))
}

// Validate checks the request against its struct tags.
func (r *ParseRequest) Validate() error {
	return ValidationError(validate.Struct(r))
}

// ValidationError rewrites the first validator failure as a readable error.
// Errors that did not come from the validator are returned unchanged.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "min":
		return fmt.Errorf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
