package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every model validation failure.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
