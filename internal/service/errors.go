package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPackage = errors.New("unknown package")
	ErrUnauthorized   = errors.New("unauthorized")
)

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// ValidationField returns the offending field when err is a request
// validation failure.
func ValidationField(err error) (field, message string, ok bool) {
	var ve *validationErr
	if errors.As(err, &ve) {
		return ve.field, ve.message, true
	}
	return "", "", false
}
