package web

import (
	"errors"

	"github.com/Ultrahd-dev/student-portal/internal/validation"
)

// ValidationNotice turns a validation failure into a notice.
// ok is false when err is not a validation failure.
func ValidationNotice(err error) (notice string, ok bool) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return "", false
	}
	return "Please check the form: " + verr.Error() + ".", true
}
