package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/posts"
)

func TestPostFeedStreamsWrites(t *testing.T) {
	mux, svc := setupSiteAPI(t)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialFeed(t, server, "/rpc")
	defer conn.Close()
	waitForSubscribers(t, svc.hub, posts.Topic, 1)

	id := createPost(t, mux, "Live")

	var pair []json.RawMessage
	readFeed(t, conn, &pair)
	if len(pair) != 2 {
		t.Fatalf("expected [action, post], got %d elements", len(pair))
	}
	var action string
	if err := json.Unmarshal(pair[0], &action); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if action != live.ActionCreate {
		t.Fatalf("expected %s, got %s", live.ActionCreate, action)
	}
	var post posts.Post
	if err := json.Unmarshal(pair[1], &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if post.ID != id || post.Title.Label != "Live" {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestCounterFeedIsScopedToOneCounter(t *testing.T) {
	mux, svc := setupSiteAPI(t)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialFeed(t, server, "/ws/counter/home")
	defer conn.Close()
	waitForSubscribers(t, svc.hub, counters.Topic("home"), 1)

	postCounterAction(t, mux, "other", "inc")
	postCounterAction(t, mux, "home", "inc")

	var update counters.Update
	readFeed(t, conn, &update)
	if update.ID != "home" || update.Count != 1 {
		t.Fatalf("unexpected update %+v", update)
	}
}

func TestFeedUnsubscribesOnClose(t *testing.T) {
	mux, svc := setupSiteAPI(t)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialFeed(t, server, "/rpc")
	waitForSubscribers(t, svc.hub, posts.Topic, 1)
	_ = conn.Close()
	waitForSubscribers(t, svc.hub, posts.Topic, 0)
}

func TestFeedWithoutHubIsUnavailable(t *testing.T) {
	api := NewSiteAPI(WithPostService(posts.NewService(posts.NewMemoryRepository())))
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}
	doJSONRequest(t, mux, http.MethodGet, "/rpc", nil, http.StatusServiceUnavailable)
}

func dialFeed(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = path
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func readFeed(t *testing.T, conn *websocket.Conn, target any) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("read deadline: %v", err)
	}
	if err := conn.ReadJSON(target); err != nil {
		t.Fatalf("read feed: %v", err)
	}
}

func waitForSubscribers(t *testing.T, hub *live.Hub, topic string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Subscribers(topic) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d subscribers on %s, got %d", want, topic, hub.Subscribers(topic))
}
