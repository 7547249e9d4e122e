package util

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct checks s against its `validate` tags and reports the first
// violation as an *InvalidArgumentError.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	fe := fieldErrs[0]
	return &InvalidArgumentError{
		Param:  fe.Field(),
		Value:  fe.Value(),
		Reason: describeTag(fe.Tag(), fe.Param()),
	}
}

func describeTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be >= " + param
	case "lte", "max":
		return "must be <= " + param
	case "oneof":
		return "must be one of [" + param + "]"
	default:
		return "failed " + tag + " check"
	}
}
