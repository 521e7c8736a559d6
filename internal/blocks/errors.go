package blocks

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidFormKind  = errors.New("blocks: invalid form kind")
	ErrUnknownBlockKind = errors.New("blocks: unknown block kind")
	ErrInvalidPayload   = errors.New("blocks: invalid block payload")
	ErrMissingField     = errors.New("blocks: missing field")
)

// InvalidFormKindError reports a form_type outside the known set.
type InvalidFormKindError struct {
	Value string
}

func (e *InvalidFormKindError) Error() string {
	return fmt.Sprintf("blocks: invalid form kind %q", e.Value)
}

func (e *InvalidFormKindError) Unwrap() error {
	return ErrInvalidFormKind
}

// UnknownBlockKindError reports a block_type tag with no matching variant.
type UnknownBlockKindError struct {
	Kind string
}

func (e *UnknownBlockKindError) Error() string {
	return fmt.Sprintf("blocks: unknown block kind %q", e.Kind)
}

func (e *UnknownBlockKindError) Unwrap() error {
	return ErrUnknownBlockKind
}

// PayloadError reports a block_data map that does not match the variant layout.
type PayloadError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("blocks: %s payload field %q %s", e.Kind, e.Field, e.Reason)
}

func (e *PayloadError) Unwrap() error {
	return ErrInvalidPayload
}

// MissingFieldError reports a Field object without a label or hint key.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("blocks: field %q is required", e.Name)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// IsValidation reports whether err was caused by malformed block input.
func IsValidation(err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return true
	}
	return errors.Is(err, ErrInvalidFormKind) ||
		errors.Is(err, ErrUnknownBlockKind) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrMissingField)
}
