package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iho/costledger/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags on a request. Failures wrap
// domain.ErrValidation so handlers map them like any other validation error.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Validationf("%v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return domain.Validationf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "max":
		return field + " is too long"
	default:
		return field + " is invalid"
	}
}
