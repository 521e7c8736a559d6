package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.UseNumber()
	return decoder.Decode(target)
}

func readBody(r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, io.EOF
	}
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError turns a service error into a status and an opaque body. Store and
// unknown failures never echo the underlying message.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, validation.ErrSchemaValidation) || errors.Is(err, validation.ErrSchemaInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: "payload does not match the post schema",
			Issues:  validation.Issues(err),
		}
	}

	var postNotFound *posts.NotFoundError
	if errors.As(err, &postNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: postNotFound.Error(),
		}
	}

	var counterNotFound *counters.NotFoundError
	if errors.As(err, &counterNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: counterNotFound.Error(),
		}
	}

	if posts.IsValidation(err) ||
		blocks.IsValidation(err) ||
		errors.Is(err, counters.ErrInvalidID) ||
		goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: validationMessage(err),
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, errorResponse{
			Error:   "timeout",
			Message: "the request took too long",
		}
	}

	if errors.Is(err, posts.ErrStoreUnavailable) {
		return http.StatusBadGateway, errorResponse{
			Error:   "store_unavailable",
			Message: "the content store is unreachable",
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "the request could not be completed",
	}
}

// validationMessage reports the cause beneath any category wrappers so the
// caller sees which value failed.
func validationMessage(err error) string {
	for goerrors.IsWrapped(err) {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err.Error()
}
