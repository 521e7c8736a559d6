package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/posts"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxClientFrame = 512
)

func (api *SiteAPI) registerLiveRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /rpc", api.handlePostFeed)
	mux.HandleFunc("GET /ws/counter/{id}", api.handleCounterFeed)
}

// handlePostFeed streams every post write as an [action, post] pair.
func (api *SiteAPI) handlePostFeed(w http.ResponseWriter, r *http.Request) {
	api.stream(w, r, posts.Topic, func(event live.Event) any {
		return []any{event.Action, event.Data}
	})
}

// handleCounterFeed streams value changes of one counter.
func (api *SiteAPI) handleCounterFeed(w http.ResponseWriter, r *http.Request) {
	id, err := counters.NormalizeID(r.PathValue("id"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	api.stream(w, r, counters.Topic(id), func(event live.Event) any {
		return event.Data
	})
}

// stream upgrades the connection and forwards hub events on topic until the
// client goes away. Client frames are read only to notice the close.
func (api *SiteAPI) stream(w http.ResponseWriter, r *http.Request, topic string, encode func(live.Event) any) {
	if api.hub == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	conn, err := api.upgrader.Upgrade(w, r, nil)
	if err != nil {
		api.logger.WithContext(r.Context()).Warn("live.upgrade.failed", "path", r.URL.Path, "error", err)
		return
	}
	defer conn.Close()

	sub := api.hub.Subscribe(topic)
	defer api.hub.Unsubscribe(sub.ID)

	logger := api.logger.WithContext(r.Context())
	logger.Debug("live.connected", "topic", topic, "subscriber_id", sub.ID)

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(maxClientFrame)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			logger.Debug("live.disconnected", "topic", topic, "subscriber_id", sub.ID)
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(encode(event)); err != nil {
				logger.Debug("live.write.failed", "topic", topic, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
