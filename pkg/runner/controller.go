package runner

import (
	"log/slog"

	"github.com/aretw0/chatbot/internal/logging"
)

// ContentRenderer transforms a reply before it is written, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// Option configures a Chat.
type Option func(*Chat)

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) Option {
	return func(c *Chat) {
		c.renderer = renderer
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chat) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrompt sets the prompt written before each read. Empty disables it.
func WithPrompt(prompt string) Option {
	return func(c *Chat) {
		c.prompt = prompt
	}
}

// WithMaxInputSize sets the byte limit of one input line. Zero keeps
// DefaultMaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(c *Chat) {
		c.input.MaxSize = n
	}
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithRelayMaxInputSize sets the byte limit of one message. Zero keeps
// DefaultMaxInputSize.
func WithRelayMaxInputSize(n int) RelayOption {
	return func(r *Relay) {
		r.input.MaxSize = n
	}
}

func defaultLogger() *slog.Logger { return logging.NewNop() }
