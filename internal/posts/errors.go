package posts

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	textCodeStoreFailed  = "POST_STORE_FAILED"
	textCodeInvalidInput = "POST_INVALID"
)

var (
	ErrNotFound         = errors.New("posts: not found")
	ErrIDAssigned       = errors.New("posts: post already has an id")
	ErrStoreUnavailable = errors.New("posts: store unavailable")
	ErrWriteRejected    = errors.New("posts: write rejected")
	ErrInvalidEdit      = errors.New("posts: edit body is neither a post nor a tagged block")
)

// NotFoundError is returned when the addressed post does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// StoreError wraps a failure reported by the underlying store. Unavailable
// is set when the request never reached the store.
type StoreError struct {
	Op          string
	Unavailable bool
	Err         error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("posts: store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Unavailable {
		return []error{ErrStoreUnavailable, e.Err}
	}
	return []error{ErrWriteRejected, e.Err}
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	wrapped := &StoreError{Op: op, Unavailable: isUnavailable(err), Err: err}
	return goerrors.Wrap(wrapped, goerrors.CategoryCommand, "post store failure").
		WithTextCode(textCodeStoreFailed)
}

func isUnavailable(err error) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		mongo.IsNetworkError(err)
}

func invalidInput(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithTextCode(textCodeInvalidInput)
}

// IsValidation reports whether err is an input fault.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
