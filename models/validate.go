package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a record against its validate tags. Failures wrap ErrValidation.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// InvalidItems validates every element of a decoded list and returns the
// failures keyed by index.
func InvalidItems[T any](items []T) map[int]error {
	var failed map[int]error
	for i := range items {
		if err := Validate(items[i]); err != nil {
			if failed == nil {
				failed = make(map[int]error)
			}
			failed[i] = err
		}
	}
	return failed
}
