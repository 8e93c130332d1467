// Package validation checks form inputs against their struct tags and turns
// validator errors into messages fit for a notice.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error lists the fields that failed validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Struct validates v. It returns *Error for tag failures.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &Error{}
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.ActualTag() {
		case "required":
			out.Messages = append(out.Messages, fmt.Sprintf("%s is required", field))
		case "max":
			out.Messages = append(out.Messages, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			out.Messages = append(out.Messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
