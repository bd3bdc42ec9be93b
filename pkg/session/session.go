package session

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/chatbot/internal/logging"
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/matcher"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/ports"
	"github.com/aretw0/chatbot/pkg/resource"
	"github.com/google/uuid"
)

const maxHistory = 256

// Random picks uniformly in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// Controller is the collaborator that receives replies and tracks which
// Session instance is live. Copy and move operations call RegisterActiveHandle
// with the instance that should receive future messages.
type Controller interface {
	ports.ReplySink
	RegisterActiveHandle(s *Session)
}

// Session is the chatbot: a cursor over a dialogue graph that owns its avatar.
type Session struct {
	id string

	// current and root are borrowed from the graph.
	current *domain.Node
	root    *domain.Node
	history []int

	// avatar is exclusively owned.
	avatar *resource.Image

	controller Controller
	rng        Random
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithController sets the reply/handle controller.
func WithController(c Controller) Option {
	return func(s *Session) {
		s.controller = c
	}
}

// WithRandom injects the source used to pick answers.
func WithRandom(r Random) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithSeed is WithRandom with a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithID fixes the session ID (default: a random UUID).
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a detached session that takes ownership of avatar.
// avatar may be nil for a session without an image.
func New(avatar *resource.Image, opts ...Option) *Session {
	s := &Session{
		avatar: avatar,
		rng:    globalRandom{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Attached reports whether the session sits on a node.
func (s *Session) Attached() bool { return s.current != nil }

// CurrentNode returns the node the session occupies, or nil.
func (s *Session) CurrentNode() *domain.Node { return s.current }

// RootNode returns the fallback node, or nil.
func (s *Session) RootNode() *domain.Node { return s.root }

// Avatar returns the owned image handle. The handle is borrowed.
func (s *Session) Avatar() *resource.Image { return s.avatar }

// Controller returns the current controller.
func (s *Session) Controller() Controller { return s.controller }

// SetController swaps the controller, e.g. when the orchestrator is replaced.
func (s *Session) SetController(c Controller) { s.controller = c }

// History returns the IDs of the nodes visited, oldest first.
func (s *Session) History() []int {
	out := make([]int, len(s.history))
	copy(out, s.history)
	return out
}

// AttachTo places the session on node, makes it the root, and delivers its greeting.
func (s *Session) AttachTo(node *domain.Node) error {
	if node == nil {
		return fmt.Errorf("attach session %s: %w", s.id, domain.ErrNodeNotFound)
	}
	s.root = node
	s.history = nil
	s.logger.Debug("Session attached", "session_id", s.id, "node_id", node.ID)
	return s.moveTo(node)
}

// OnUserMessage picks the best matching outgoing edge of the current node and
// follows it. Without any candidate edge the session returns to the root.
// Exactly one reply is delivered on success.
func (s *Session) OnUserMessage(text string) error {
	if s.current == nil {
		s.metrics.RecordError("no_current_node")
		return domain.ErrNoCurrentNode
	}
	s.metrics.RecordMessage()

	target := s.root
	if best, ok := matcher.SelectBest(s.current.ChildEdges(), text); ok {
		target = best.Edge.Child()
		s.metrics.RecordTransition(observability.TransitionEdge)
		s.metrics.RecordDistance(best.Distance)
		s.logger.Debug("Edge matched",
			"session_id", s.id,
			"from", s.current.ID,
			"to", target.ID,
			"keyword", best.Keyword,
			"distance", best.Distance,
		)
	} else {
		s.metrics.RecordTransition(observability.TransitionFallback)
		s.logger.Debug("No edge matched, returning to root",
			"session_id", s.id,
			"from", s.current.ID,
			"to", s.root.ID,
		)
	}

	return s.moveTo(target)
}

// moveTo relocates the session onto target and runs the arrival behaviour.
func (s *Session) moveTo(target *domain.Node) error {
	s.current = target
	s.history = append(s.history, target.ID)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	return s.arrive()
}

// arrive picks one answer of the current node uniformly and delivers it.
func (s *Session) arrive() error {
	n := s.current.AnswerCount()
	if n == 0 {
		s.metrics.RecordError("empty_answer_set")
		return fmt.Errorf("arrive at node %d: %w", s.current.ID, domain.ErrEmptyAnswerSet)
	}
	answer, err := s.current.AnswerAt(s.rng.IntN(n))
	if err != nil {
		return err
	}
	s.deliver(answer)
	return nil
}

func (s *Session) deliver(answer string) {
	s.metrics.RecordReply()
	if s.controller == nil {
		s.logger.Debug("Reply dropped, no controller", "session_id", s.id)
		return
	}
	s.controller.Deliver(answer)
}

// Snapshot returns the persistable position of the session.
func (s *Session) Snapshot() (domain.Snapshot, error) {
	if s.current == nil {
		return domain.Snapshot{}, domain.ErrNoCurrentNode
	}
	return domain.Snapshot{
		SessionID:     s.id,
		CurrentNodeID: s.current.ID,
		RootNodeID:    s.root.ID,
		Avatar:        s.avatar.Name(),
		History:       s.History(),
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// Restore re-attaches the session to the position recorded in snap.
// Unlike AttachTo it does not deliver a reply.
func (s *Session) Restore(g *domain.Graph, snap domain.Snapshot) error {
	current, err := g.Node(snap.CurrentNodeID)
	if err != nil {
		return fmt.Errorf("restore session %s: %w", snap.SessionID, err)
	}
	root, err := g.Node(snap.RootNodeID)
	if err != nil {
		return fmt.Errorf("restore session %s: %w", snap.SessionID, err)
	}
	if snap.SessionID != "" {
		s.id = snap.SessionID
	}
	s.current = current
	s.root = root
	s.history = append([]int(nil), snap.History...)
	return nil
}
