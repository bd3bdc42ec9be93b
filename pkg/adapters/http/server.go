package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/chatbot/internal/logging"
	"github.com/aretw0/chatbot/internal/presentation/graph"
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server serves one session through a runner.Relay. It implements the
// generated ServerInterface.
type Server struct {
	Graph   *domain.Graph
	Relay   *runner.Relay
	Manager *session.Manager
	Streams *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithManager checkpoints the session after every message.
func WithManager(m *session.Manager) Option {
	return func(s *Server) {
		s.Manager = m
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a Server. The relay must already hold an attached session.
func NewServer(g *domain.Graph, relay *runner.Relay, opts ...Option) *Server {
	s := &Server{
		Graph:    g,
		Relay:    relay,
		Streams:  NewStreamManager(),
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler. Requests on documented routes are
// validated against api/openapi.yaml first. It panics if the embedded document
// cannot be loaded, which only a bad regeneration can cause.
func (s *Server) Handler() http.Handler {
	validate, err := newRequestValidator(s.logger)
	if err != nil {
		panic(fmt.Errorf("http adapter: %w", err))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(validate)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		doc, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load OpenAPI document", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI document", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(doc)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/events", s.SubscribeEvents)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return enableCORS(HandlerFromMux(s, r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Chatbot API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// PostMessage handles POST /messages.
func (s *Server) PostMessage(w http.ResponseWriter, r *http.Request) {
	var body PostMessageJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostMessage: Invalid request body", "err", err)
		return
	}

	var resp MessageResponse
	err := s.Relay.Do(func(sess *session.Session) error {
		err := s.Relay.Dispatch(sess, body.Text)
		resp.Replies = s.Relay.Drain()
		if err != nil {
			return err
		}
		resp.SessionId = sess.ID()
		resp.NodeId = sess.CurrentNode().ID
		if s.Manager != nil {
			if err := s.Manager.Checkpoint(r.Context(), sess); err != nil {
				s.logger.Error("Checkpoint failed", "session_id", sess.ID(), "err", err)
			}
		}
		return nil
	})
	for _, reply := range resp.Replies {
		s.Streams.Broadcast(reply)
	}
	if err != nil {
		status := statusFor(err)
		http.Error(w, fmt.Sprintf("Message rejected: %v", err), status)
		s.logger.Warn("PostMessage failed", "status", status, "err", err)
		return
	}

	writeJSON(w, s.logger, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, runner.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, runner.ErrInvalidUTF8), errors.Is(err, runner.ErrBlankInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoCurrentNode):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	err := s.Relay.Do(func(sess *session.Session) (err error) {
		snap, err = sess.Snapshot()
		return err
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Session unavailable: %v", err), statusFor(err))
		return
	}
	writeJSON(w, s.logger, snap)
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, graph.NewView(s.Graph))
}

// GetMermaid handles GET /graph/mermaid. The session's path is highlighted
// unless overlay=false.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request, params GetMermaidParams) {
	var overlay *graph.GraphOverlay
	if params.Overlay == nil || *params.Overlay {
		var history []int
		_ = s.Relay.Do(func(sess *session.Session) error {
			history = sess.History()
			return nil
		})
		overlay = graph.OverlayFromHistory(history)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.Graph, overlay))
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, Health{Status: "ok"})
}

// SubscribeEvents handles GET /events, streaming every reply as an SSE event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			data, _ := json.Marshal(msg)
			fmt.Fprintf(w, "event: reply\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}

// StreamManager fans replies out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a buffered channel and returns it with its cancel func.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber. Slow subscribers drop messages.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}

// Subscribers returns the number of active subscribers.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}
