package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/chatbot/internal/logging"
	loamAdapter "github.com/aretw0/chatbot/pkg/adapters/loam"
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/ports"
	"github.com/aretw0/chatbot/pkg/resource"
	"github.com/aretw0/chatbot/pkg/session"
)

// Bot is the high-level entry point: a loaded graph plus the defaults every
// session created from it shares.
type Bot struct {
	Graph *domain.Graph
	Name  string

	loader     ports.GraphLoader
	logger     *slog.Logger
	metrics    *observability.Metrics
	random     session.Random
	seed       *uint64
	avatarPath string
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithLoader injects a custom GraphLoader, bypassing the default Loam loader.
func WithLoader(l ports.GraphLoader) Option {
	return func(b *Bot) {
		b.loader = l
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithMetrics records session activity.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Bot) {
		b.metrics = m
	}
}

// WithRandom sets the answer picker shared by every session.
func WithRandom(r session.Random) Option {
	return func(b *Bot) {
		b.random = r
	}
}

// WithSeed makes answer selection reproducible. Each session gets its own
// generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(b *Bot) {
		b.seed = &seed
	}
}

// WithAvatar loads the image at path for every new session.
func WithAvatar(path string) Option {
	return func(b *Bot) {
		b.avatarPath = path
	}
}

// New loads the graph found in dir (or through WithLoader) and checks that it has a root.
// Other validation problems are logged but do not prevent chatting.
func New(dir string, opts ...Option) (*Bot, error) {
	b := &Bot{}
	for _, opt := range opts {
		opt(b)
	}

	if b.loader == nil {
		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, err
		}
		b.loader = loader
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			b.Name = filepath.Base(abs)
		}
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.Name != "" {
		b.logger = b.logger.With("graph", b.Name)
	}

	g, err := b.loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	if g.Root() == nil {
		return nil, domain.ErrNoRoot
	}
	if err := g.Validate(); err != nil {
		b.logger.Warn("Graph has problems", "err", err)
	}
	b.Graph = g

	b.logger.Debug("Graph loaded", "nodes", g.Len(), "root", g.Root().ID)
	return b, nil
}

// Validate reports every configuration problem of the loaded graph.
func (b *Bot) Validate() error {
	return b.Graph.Validate()
}

// NewSession creates a detached session carrying the bot defaults.
// Later opts override the defaults.
func (b *Bot) NewSession(opts ...session.Option) (*session.Session, error) {
	var avatar *resource.Image
	if b.avatarPath != "" {
		img, err := resource.Load(b.avatarPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load avatar: %w", err)
		}
		avatar = img
	}

	base := []session.Option{session.WithLogger(b.logger), session.WithMetrics(b.metrics)}
	switch {
	case b.random != nil:
		base = append(base, session.WithRandom(b.random))
	case b.seed != nil:
		base = append(base, session.WithSeed(*b.seed))
	}
	return session.New(avatar, append(base, opts...)...), nil
}

// Start creates a session, hands it to ctrl by move and attaches it to the
// root, which delivers the greeting. The returned handle is the live one.
func (b *Bot) Start(ctrl session.Controller, opts ...session.Option) (*session.Session, error) {
	s, err := b.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	live := session.Adopt(ctrl, s)
	if err := live.AttachTo(b.Graph.Root()); err != nil {
		live.Release()
		return nil, err
	}
	return live, nil
}

// Resume restores session id from mgr under ctrl. Unknown sessions start fresh
// at the root with that id. Restored sessions are not greeted again.
func (b *Bot) Resume(ctx context.Context, mgr *session.Manager, id string, ctrl session.Controller, opts ...session.Option) (*session.Session, error) {
	s, err := b.NewSession(append(opts, session.WithID(id))...)
	if err != nil {
		return nil, err
	}
	live := session.Adopt(ctrl, s)

	found, err := mgr.Resume(ctx, id, b.Graph, live)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		live.Release()
		return nil, err
	}
	if found {
		b.logger.Info("Session resumed", "session_id", id, "node_id", live.CurrentNode().ID)
		return live, nil
	}
	if err := live.AttachTo(b.Graph.Root()); err != nil {
		live.Release()
		return nil, err
	}
	return live, nil
}
