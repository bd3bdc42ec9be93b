package runner

import (
	"fmt"
	"sync"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/session"
)

// Relay is a controller for request/response hosts. Replies are buffered
// until the caller drains them. Safe for concurrent use; Send calls are
// serialised so one live session sees one message at a time.
type Relay struct {
	turn  sync.Mutex
	input InputPolicy

	mu      sync.Mutex
	replies []string
	active  *session.Session
}

// NewRelay creates an empty relay.
func NewRelay(opts ...RelayOption) *Relay {
	r := &Relay{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deliver buffers a reply.
func (r *Relay) Deliver(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, text)
}

// RegisterActiveHandle records s as the live session.
func (r *Relay) RegisterActiveHandle(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = s
}

// Active returns the live session handle, or nil.
func (r *Relay) Active() *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Adopt moves s under this relay and returns the live handle.
func (r *Relay) Adopt(s *session.Session) *session.Session {
	return session.Adopt(r, s)
}

// Drain returns and clears the buffered replies.
func (r *Relay) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.replies
	r.replies = nil
	return out
}

// Send dispatches one message and returns the replies it produced,
// together with any earlier replies nobody drained.
func (r *Relay) Send(message string) ([]string, error) {
	var replies []string
	err := r.Do(func(s *session.Session) error {
		err := r.Dispatch(s, message)
		replies = r.Drain()
		return err
	})
	return replies, err
}

// Do runs fn against the live session while holding the turn lock.
func (r *Relay) Do(fn func(s *session.Session) error) error {
	r.turn.Lock()
	defer r.turn.Unlock()

	s := r.Active()
	if s == nil {
		return fmt.Errorf("relay: %w", domain.ErrNoCurrentNode)
	}
	return fn(s)
}

// Dispatch normalizes message with the relay's input policy and hands it to s.
// Call it from inside Do; blank input is an error here, unlike in Chat.
func (r *Relay) Dispatch(s *session.Session, message string) error {
	text, err := r.input.Normalize(message)
	if err != nil {
		return err
	}
	return s.OnUserMessage(text)
}
