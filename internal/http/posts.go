package http

import (
	"errors"
	"net/http"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/posts"
)

type helloResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data"`
}

func (api *SiteAPI) registerPostRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "posts")
	mux.HandleFunc("GET "+root, api.handlePostList)
	mux.HandleFunc("POST "+root, api.handlePostCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePostGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handlePostEdit)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handlePostEdit)

	// Edit forms post to the short path.
	mux.HandleFunc("PUT /posts/{id}", api.handlePostEdit)
	mux.HandleFunc("PATCH /posts/{id}", api.handlePostEdit)

	mux.HandleFunc("GET "+joinPath(base, "schemas"), api.handleSchemas)
	mux.HandleFunc("GET "+joinPath(base, "hello"), api.handleHello)
}

func (api *SiteAPI) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	post, err := api.posts.Create(r.Context(), req)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (api *SiteAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	list, err := api.posts.List(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*posts.Post{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *SiteAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	post, err := api.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handlePostEdit runs the update protocol: a full post replaces the stored
// one, a tagged block is appended. The path id always addresses the post.
func (api *SiteAPI) handlePostEdit(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	var opts []posts.DecodeOption
	if api.validator != nil {
		opts = append(opts, posts.WithSchemaValidator(api.validator))
	}
	edit, err := posts.DecodeEdit(body, opts...)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	post, err := api.posts.ApplyEdit(r.Context(), r.PathValue("id"), edit)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *SiteAPI) handleSchemas(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, blocks.AllSchemas())
}

func (api *SiteAPI) handleHello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, helloResponse{
		Message:    "Hello, World!",
		StatusCode: http.StatusOK,
		Data:       map[string]any{"kinds": blocks.Kinds()},
	})
}

// fail logs err with full detail and answers with the mapped opaque body.
func (api *SiteAPI) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	logger := api.logger.WithContext(r.Context())
	requestID := logging.RequestID(r.Context())
	fields := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
		logging.RequestIDField, requestID,
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("http.request.failed", fields...)
	case errors.Is(err, posts.ErrNotFound):
		logger.Debug("http.request.failed", fields...)
	default:
		logger.Warn("http.request.failed", fields...)
	}
	writeJSON(w, status, payload)
}
