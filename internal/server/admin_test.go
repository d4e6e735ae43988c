package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/danmuck/udpchat/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func TestAdminRoutes(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s := testServer(t, WithID("chat-admin"))
	s.dispatch(protocol.NewSubscribe("room"), addr(4000))
	s.dispatch(protocol.NewSubscribe("room"), addr(4001))
	router := s.AdminRouter(nil)

	rr := get(t, router, "/health")
	var health map[string]any
	decode(t, rr, &health)
	if health["status"] != "ok" || health["server"] != "chat-admin" {
		t.Fatalf("unexpected health body: %#v", health)
	}

	rr = get(t, router, "/channels")
	var channels struct {
		Channels map[string][]string `json:"channels"`
	}
	decode(t, rr, &channels)
	if got := channels.Channels["room"]; len(got) != 2 || got[0] != "127.0.0.1:4000" {
		t.Fatalf("unexpected channels body: %#v", channels)
	}

	rr = get(t, router, "/channels/room")
	var one struct {
		Channel     string   `json:"channel"`
		Subscribers []string `json:"subscribers"`
	}
	decode(t, rr, &one)
	if one.Channel != "room" || len(one.Subscribers) != 2 {
		t.Fatalf("unexpected channel body: %#v", one)
	}
	log.Info().Str("path", "/channels/room").Int("subscribers", len(one.Subscribers)).Msg("server/admin")

	req := httptest.NewRequest(http.MethodGet, "/channels/missing", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown channel, got %d", rr.Code)
	}

	rr = get(t, router, "/metrics")
	if !strings.Contains(rr.Body.String(), "udpchat_server_datagrams_received_total") {
		t.Fatalf("expected server counters in metrics output")
	}
}

func TestNormalizeOrigins(t *testing.T) {
	if got := normalizeOrigins([]string{" ", ""}); len(got) != 2 {
		t.Fatalf("expected default origins, got %v", got)
	}
	if got := normalizeOrigins([]string{" http://chat.local "}); len(got) != 1 || got[0] != "http://chat.local" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d body=%s", path, rr.Code, rr.Body.String())
	}
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
