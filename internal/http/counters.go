package http

import (
	"net/http"
	"net/url"
	"strings"

	countercmd "github.com/auteur-engineer/website/internal/commands/counters"
)

const (
	counterActionIncrement = "inc"
	counterActionDecrement = "dec"
)

func (api *SiteAPI) registerCounterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /counter/{id}", api.handleCounterPage)
	mux.HandleFunc("POST /counter/{id}", api.handleCounterAction)
	mux.HandleFunc("GET /api/counter/{id}", api.handleCounterGet)
}

// handleCounterPage opens the counter at zero on first visit.
func (api *SiteAPI) handleCounterPage(w http.ResponseWriter, r *http.Request) {
	if !api.requireCounters(w) {
		return
	}
	counter, err := api.counters.Open(r.Context(), r.PathValue("id"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	api.render(w, r, "counter.html", map[string]any{
		"title":   "Counter " + counter.ID,
		"counter": counter,
	})
}

func (api *SiteAPI) handleCounterGet(w http.ResponseWriter, r *http.Request) {
	if !api.requireCounters(w) {
		return
	}
	counter, err := api.counters.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counter)
}

// handleCounterAction applies the form action and redirects back to the
// counter page. Unknown actions change nothing.
func (api *SiteAPI) handleCounterAction(w http.ResponseWriter, r *http.Request) {
	if !api.requireCounters(w) {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_form", Message: err.Error()})
		return
	}

	id := r.PathValue("id")
	var err error
	switch strings.ToLower(strings.TrimSpace(r.PostForm.Get("action"))) {
	case counterActionIncrement:
		err = api.increment.Execute(r.Context(), countercmd.IncrementCounterCommand{ID: id})
	case counterActionDecrement:
		err = api.decrement.Execute(r.Context(), countercmd.DecrementCounterCommand{ID: id})
	default:
		api.logger.WithContext(r.Context()).Debug("counter.action.ignored",
			"counter_id", id,
			"action", r.PostForm.Get("action"),
		)
	}
	if err != nil {
		api.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/counter/"+url.PathEscape(id), http.StatusSeeOther)
}

func (api *SiteAPI) requireCounters(w http.ResponseWriter) bool {
	if api.counters == nil || api.increment == nil || api.decrement == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return false
	}
	return true
}
