package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/posts"
)

const htmlContentType = "text/html; charset=utf-8"

func (api *SiteAPI) registerPageRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", api.handleIndex)
	mux.HandleFunc("GET /mario", api.handleMario)
	mux.HandleFunc("GET /admin/posts/{$}", api.handleAdminPosts)
	mux.HandleFunc("GET /admin/posts/{id}", api.handleAdminPostEdit)
}

func (api *SiteAPI) handleIndex(w http.ResponseWriter, r *http.Request) {
	api.render(w, r, "index.html", map[string]any{
		"title":           "Home",
		"heading":         "Welcome",
		"message":         "Notes, posts and experiments.",
		"show_extra_info": true,
	})
}

func (api *SiteAPI) handleMario(w http.ResponseWriter, r *http.Request) {
	api.render(w, r, "mario/index.html", map[string]any{"title": "Mario"})
}

func (api *SiteAPI) handleAdminPosts(w http.ResponseWriter, r *http.Request) {
	list, err := api.posts.List(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}
	api.render(w, r, "admin/posts/index.html", map[string]any{
		"title": "Posts",
		"posts": list,
	})
}

// handleAdminPostEdit renders the edit form. A missing post still renders
// the page with post set to nil.
func (api *SiteAPI) handleAdminPostEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data := map[string]any{
		"title":     "Edit post",
		"post_id":   id,
		"post":      nil,
		"post_json": "null",
	}

	post, err := api.posts.Get(r.Context(), id)
	switch {
	case err == nil:
		encoded, err := json.Marshal(post)
		if err != nil {
			api.fail(w, r, err)
			return
		}
		data["post"] = post
		data["post_json"] = string(encoded)
	case !posts.IsNotFound(err):
		api.fail(w, r, err)
		return
	}

	schemas := blocks.AllSchemas()
	schemasJSON, err := json.Marshal(schemas)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	data["schemas"] = schemas
	data["schemas_json"] = string(schemasJSON)
	data["schema_forms"] = schemaForms(schemas)
	api.render(w, r, "admin/posts/edit.html", data)
}

// schemaForms flattens the registry into plain strings for the form
// template.
func schemaForms(schemas []blocks.BlockSchema) []map[string]any {
	forms := make([]map[string]any, 0, len(schemas))
	for _, schema := range schemas {
		fields := make([]map[string]string, 0, len(schema.Fields))
		for _, field := range schema.Fields {
			fields = append(fields, map[string]string{
				"name":      field.Name,
				"label":     field.Label,
				"form_type": string(field.FormType),
				"input":     inputFor(field.FormType),
			})
		}
		forms = append(forms, map[string]any{
			"block_type": string(schema.BlockType),
			"fields":     fields,
		})
	}
	return forms
}

func inputFor(kind blocks.FormKind) string {
	switch kind {
	case blocks.InputArea:
		return "textarea"
	case blocks.InputDate:
		return "date"
	default:
		return "text"
	}
}

// render executes the template fully before writing so a failure can still
// answer with a clean 500.
func (api *SiteAPI) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if api.renderer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	html, err := api.renderer.Render(name, data)
	if err != nil {
		api.logger.WithContext(r.Context()).Error("http.render.failed",
			"template", name,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "render_failed",
			Message: "the page could not be rendered",
		})
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}
