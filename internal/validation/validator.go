package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every struct validation failure
var ErrInvalid = errors.New("validation failed")

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Struct validates v using its struct tags
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns the first field error into a readable message
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
		case "min", "gte":
			return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, param)
		case "max", "lte":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalid, field, param)
		case "oneof":
			return fmt.Errorf("%w: %s: must be one of [%s], got %v", ErrInvalid, field, param, e.Value())
		case "hostname_port":
			return fmt.Errorf("%w: %s: must be host:port, got %v", ErrInvalid, field, e.Value())
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
