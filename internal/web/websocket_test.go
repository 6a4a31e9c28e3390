package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportspulse/internal/config"
	"sportspulse/internal/domain"
	"sportspulse/internal/registry"
	"sportspulse/internal/service"
)

type liveFixture struct {
	hub    *Hub
	live   *service.LiveScoreService
	news   *service.NewsService
	server *httptest.Server
}

func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	matches := registry.NewMatchRegistry(rand.New(rand.NewPCG(7, 7)), registry.DefaultMatches())
	articles := registry.NewArticleRegistry(registry.DefaultArticles(time.Now()))

	hub := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	f := &liveFixture{
		hub:  hub,
		live: service.NewLiveScoreService(matches, nil, hub, rand.New(rand.NewPCG(1, 1)), 1, logger),
		news: service.NewNewsService(articles, nil, hub, logger),
	}

	srv := NewServer(config.HTTPConfig{AllowedOrigins: []string{"https://sportspulse.example"}}, Deps{
		Matches:    matches,
		Articles:   articles,
		LiveScores: f.live,
		News:       f.news,
		Hub:        hub,
	}, logger)
	f.server = httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		f.server.Close()
		cancel()
	})
	return f
}

func (f *liveFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type rawMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

func readMessage(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg rawMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_WelcomeAndScoreUpdate(t *testing.T) {
	f := newLiveFixture(t)
	conn := f.dial(t)

	welcome := readMessage(t, conn)
	assert.Equal(t, EventConnected, welcome.Type)
	var hello map[string]string
	require.NoError(t, json.Unmarshal(welcome.Data, &hello))
	assert.NotEmpty(t, hello["client_id"])
	assert.Equal(t, 1, f.hub.ClientCount())

	updated, err := f.live.Simulate(context.Background(), "liverpool-city")
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, service.EventScoreUpdate, msg.Type)
	assert.NotZero(t, msg.Timestamp)

	var match domain.Match
	require.NoError(t, json.Unmarshal(msg.Data, &match))
	assert.Equal(t, updated, match)
}

func TestHub_SubscribeFiltersEvents(t *testing.T) {
	f := newLiveFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":   "subscribe",
		"events": []string{service.EventArticleCreated},
	}))

	require.Eventually(t, func() bool {
		f.hub.mu.RLock()
		defer f.hub.mu.RUnlock()
		for client := range f.hub.clients {
			if client.wants(service.EventScoreUpdate) {
				return false
			}
		}
		return len(f.hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := f.live.Simulate(context.Background(), "liverpool-city")
	require.NoError(t, err)

	stored, err := f.news.Add(context.Background(), domain.Article{Title: "Breaking", Category: "Football"})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, service.EventArticleCreated, msg.Type)

	var article domain.Article
	require.NoError(t, json.Unmarshal(msg.Data, &article))
	assert.Equal(t, stored.ID, article.ID)
	assert.Equal(t, "Breaking", article.Title)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	f := newLiveFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)
	require.Equal(t, 1, f.hub.ClientCount())

	conn.Close()

	require.Eventually(t, func() bool {
		return f.hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	f := newLiveFixture(t)

	wsURL := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://sportspulse.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	conn.Close()
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	hub := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	// Broadcasting after stop must not block.
	hub.Broadcast(service.EventScoreUpdate, domain.Match{ID: "x"})
	assert.Zero(t, hub.ClientCount())
}

func TestHub_ManualUpdateIsBroadcast(t *testing.T) {
	f := newLiveFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	req, err := http.NewRequest(http.MethodPatch, f.server.URL+"/api/matches/liverpool-city",
		strings.NewReader(`{"status":"finished","minute":90}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg := readMessage(t, conn)
	assert.Equal(t, service.EventScoreUpdate, msg.Type)

	var match domain.Match
	require.NoError(t, json.Unmarshal(msg.Data, &match))
	assert.Equal(t, "liverpool-city", match.ID)
	assert.Equal(t, domain.MatchFinished, match.Status)
	assert.Equal(t, 90, match.Minute)
	assert.Equal(t, 1, match.HomeScore)
}
