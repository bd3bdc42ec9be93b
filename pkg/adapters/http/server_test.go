package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/chatbot/internal/presentation/graph"
	"github.com/aretw0/chatbot/pkg/adapters/memory"
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/dsl"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstRandom struct{}

func (firstRandom) IntN(int) int { return 0 }

func newTestServer(t *testing.T, opts ...Option) (*Server, *runner.Relay) {
	t.Helper()
	b := dsl.New()
	b.Node(1).Answer("Hello!").Go(2, "bye")
	b.Node(2).Answer("Goodbye!").Go(1, "hello")
	g := b.Root(1).MustBuild()

	relay := runner.NewRelay()
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{}), session.WithID("sess-1")))
	require.NoError(t, s.AttachTo(g.Root()))
	relay.Drain()

	return NewServer(g, relay, opts...), relay
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := post(t, h, `{"text":"byee"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "sess-1", resp.SessionId)
	assert.Equal(t, 2, resp.NodeId)
	assert.Equal(t, []string{"Goodbye!"}, resp.Replies)
}

func TestPostMessage_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Malformed JSON", `{"text":`, http.StatusBadRequest},
		{"Missing Text", `{}`, http.StatusBadRequest},
		{"Empty Text", `{"text":""}`, http.StatusBadRequest},
		{"Wrong Type", `{"text":42}`, http.StatusBadRequest},
		{"Blank Text", `{"text":"  \t "}`, http.StatusBadRequest},
		{"Too Large", `{"text":"` + strings.Repeat("a", runner.DefaultMaxInputSize+1) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, post(t, h, tt.body).Code)
		})
	}
}

func TestPostMessage_RequiresJSONContentType(t *testing.T) {
	srv, relay := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"bye"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []int{1}, relay.Active().History(), "invalid requests never reach the session")
}

func TestPostMessage_InputPolicy(t *testing.T) {
	b := dsl.New()
	b.Node(1).Answer("Hello!").Go(2, "bye")
	b.Node(2).Answer("Goodbye!")
	g := b.Root(1).MustBuild()

	relay := runner.NewRelay(runner.WithRelayMaxInputSize(8))
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{})))
	require.NoError(t, s.AttachTo(g.Root()))
	relay.Drain()
	h := NewServer(g, relay).Handler()

	assert.Equal(t, http.StatusRequestEntityTooLarge, post(t, h, `{"text":"far too long"}`).Code)

	w := post(t, h, `{"text":"  bye\n"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, relay.Active().CurrentNode().ID)
}

func TestPostMessage_NoSession(t *testing.T) {
	srv := NewServer(domain.NewGraph(), runner.NewRelay())
	assert.Equal(t, http.StatusConflict, post(t, srv.Handler(), `{"text":"hi"}`).Code)
}

func TestPostMessage_Checkpoints(t *testing.T) {
	store := memory.NewStore()
	srv, _ := newTestServer(t, WithManager(session.NewManager(store)))

	require.Equal(t, http.StatusOK, post(t, srv.Handler(), `{"text":"bye"}`).Code)

	snap, err := store.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentNodeID)
	assert.Equal(t, []int{1, 2}, snap.History)
}

func TestGetSession(t *testing.T) {
	srv, _ := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap domain.Snapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
	assert.Equal(t, "sess-1", snap.SessionID)
	assert.Equal(t, 1, snap.CurrentNodeID)
}

func TestGetGraph(t *testing.T) {
	srv, _ := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view graph.View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	require.NotNil(t, view.Root)
	assert.Equal(t, 1, *view.Root)
	require.Len(t, view.Nodes, 2)
	assert.Equal(t, []graph.EdgeView{{To: 2, Keywords: []string{"bye"}}}, view.Nodes[0].Edges)
}

func TestGetMermaid(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	post(t, h, `{"text":"bye"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph/mermaid", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph TD")
	assert.Contains(t, w.Body.String(), "class n2 current;")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph/mermaid?overlay=false", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph TD")
	assert.NotContains(t, w.Body.String(), "classDef")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph/mermaid?overlay=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))

	doc, err := openapi3.NewLoader().LoadFromData(w.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	for _, p := range []string{"/messages", "/session", "/graph", "/graph/mermaid", "/healthz"} {
		assert.NotNil(t, doc.Paths.Find(p), p)
	}
	assert.NotNil(t, doc.Paths.Find("/messages").Post)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/openapi.yaml")
}

func TestServerInterface_Unimplemented(t *testing.T) {
	h := Handler(Unimplemented{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	b := dsl.New()
	b.Node(1).Answer("Hi")
	g := b.MustBuild()
	relay := runner.NewRelay()
	s := relay.Adopt(session.New(nil, session.WithMetrics(metrics)))
	require.NoError(t, s.AttachTo(g.Root()))

	h := NewServer(g, relay, WithGatherer(reg)).Handler()
	post(t, h, `{"text":"anything"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chatbot_messages_total 1")
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/messages", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readLine := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		return line
	}
	assert.Equal(t, "event: ping\n", readLine())
	assert.Equal(t, "data: connected\n", readLine())
	assert.Equal(t, "\n", readLine())

	require.Equal(t, 1, srv.Streams.Subscribers())

	msg, err := http.Post(ts.URL+"/messages", "application/json", strings.NewReader(`{"text":"bye"}`))
	require.NoError(t, err)
	msg.Body.Close()

	assert.Equal(t, "event: reply\n", readLine())
	assert.Equal(t, "data: \"Goodbye!\"\n", readLine())
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe()
	defer cancel()

	for range 20 {
		sm.Broadcast("x")
	}
	assert.Len(t, ch, 10)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers())
}
