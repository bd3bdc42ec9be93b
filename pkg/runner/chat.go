package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/session"
)

// DefaultInputBufferSize is the number of lines read ahead of the dispatch loop.
const DefaultInputBufferSize = 64

// Chat is an interactive controller: replies go to a writer, messages come
// from Run's reader and are dispatched to the active session handle.
// Deliver and RegisterActiveHandle are called from the goroutine running Run.
type Chat struct {
	writer   io.Writer
	renderer ContentRenderer
	logger   *slog.Logger
	prompt   string
	input    InputPolicy

	active *session.Session
}

// NewChat creates a Chat writing to w.
func NewChat(w io.Writer, opts ...Option) *Chat {
	c := &Chat{
		writer: w,
		logger: defaultLogger(),
		prompt: "> ",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deliver renders and writes one reply.
func (c *Chat) Deliver(text string) {
	output := text
	if c.renderer != nil {
		if rendered, err := c.renderer(text); err == nil {
			output = rendered
		} else {
			c.logger.Debug("Render failed, writing raw reply", "err", err)
		}
	}
	fmt.Fprintln(c.writer, strings.TrimSpace(output))
}

// RegisterActiveHandle records s as the session that receives messages.
func (c *Chat) RegisterActiveHandle(s *session.Session) {
	c.active = s
}

// Active returns the live session handle, or nil.
func (c *Chat) Active() *session.Session { return c.active }

// Adopt moves s under this controller and returns the live handle.
// s is left empty.
func (c *Chat) Adopt(s *session.Session) *session.Session {
	return session.Adopt(c, s)
}

// IsQuit reports whether line ends the conversation.
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return true
	}
	return false
}

// Run reads lines from r and dispatches them until quit, EOF or ctx is done.
// Blank lines are ignored. Rejected input is reported and the loop continues.
// The reader goroutine stops with Run, whatever the reason Run returns.
func (c *Chat) Run(ctx context.Context, r io.Reader) error {
	if c.active == nil || !c.active.Attached() {
		return domain.ErrNoCurrentNode
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, DefaultInputBufferSize)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if c.prompt != "" {
			fmt.Fprint(c.writer, c.prompt)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			return nil
		}

		if IsQuit(line) {
			return nil
		}
		if err := c.dispatch(line); err != nil {
			return err
		}
	}
}

func (c *Chat) dispatch(line string) error {
	text, err := c.input.Normalize(line)
	switch {
	case errors.Is(err, ErrBlankInput):
		return nil
	case err != nil:
		c.logger.Warn("Input rejected", "err", err)
		fmt.Fprintf(c.writer, "(input rejected: %v)\n", err)
		return nil
	}

	err = c.active.OnUserMessage(text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoCurrentNode):
		return err
	default:
		c.logger.Error("Message failed", "session_id", c.active.ID(), "err", err)
		fmt.Fprintf(c.writer, "(%v)\n", err)
		return nil
	}
}
