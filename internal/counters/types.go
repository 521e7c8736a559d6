package counters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// Counter is a named integer shared by every visitor of its page.
type Counter struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
}

// Update is the payload published after a counter changes.
type Update struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

var (
	ErrNotFound  = errors.New("counters: not found")
	ErrInvalidID = errors.New("counters: invalid counter id")
)

// NotFoundError reports a counter that does not exist.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("counter %q not found", e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NormalizeID turns a path segment into a stable counter id.
func NormalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if normalized == "" {
		return "", ErrInvalidID
	}
	return normalized, nil
}

// Topic is the live hub topic for one counter.
func Topic(id string) string {
	return "counter:" + id
}
