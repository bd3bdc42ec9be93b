package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxInputSize is the largest message in bytes a controller accepts.
	DefaultMaxInputSize = 4096

	// EnvMaxInputSize overrides DefaultMaxInputSize for the CLI hosts.
	EnvMaxInputSize = "CHATBOT_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum size")
	ErrInvalidUTF8   = errors.New("input contains invalid utf-8")
	ErrBlankInput    = errors.New("input is blank")
)

// InputPolicy turns raw user text into a message a session can score.
// Both controllers apply the same policy, so a line typed in the terminal and
// a body posted over HTTP reach the session in the same shape.
type InputPolicy struct {
	// MaxSize is the byte limit checked before any other rule. Zero or
	// negative means DefaultMaxInputSize.
	MaxSize int
}

func (p InputPolicy) limit() int {
	if p.MaxSize > 0 {
		return p.MaxSize
	}
	return DefaultMaxInputSize
}

// Normalize validates input and returns the text to hand to the session:
// control characters other than tab and newlines are removed and surrounding
// whitespace is trimmed. Input that ends up empty yields ErrBlankInput.
func (p InputPolicy) Normalize(input string) (string, error) {
	if max := p.limit(); len(input) > max {
		return "", fmt.Errorf("%w (%d > %d bytes)", ErrInputTooLarge, len(input), max)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	text := strings.TrimSpace(strings.Map(keepPrintable, input))
	if text == "" {
		return "", ErrBlankInput
	}
	return text, nil
}

func keepPrintable(r rune) rune {
	switch r {
	case '\n', '\r', '\t':
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}

// MaxInputSizeFromEnv reads EnvMaxInputSize. It returns 0, meaning the
// default, when the variable is unset or not a positive integer.
func MaxInputSizeFromEnv() int {
	n, err := strconv.Atoi(os.Getenv(EnvMaxInputSize))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
