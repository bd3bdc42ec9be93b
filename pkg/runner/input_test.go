package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputPolicy_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "hello", "hello", nil},
		{"Trims Surrounding Space", "  hello \r\n", "hello", nil},
		{"Keeps Inner Whitespace", "a\tb\nc", "a\tb\nc", nil},
		{"Strips Control Characters", "he\x00ll\x07o\x1b", "hello", nil},
		{"Blank After Trim", " \t\r\n ", "", ErrBlankInput},
		{"Blank After Strip", "\x00\x1b ", "", ErrBlankInput},
		{"Empty", "", "", ErrBlankInput},
		{"Invalid UTF-8", "a\xffb", "", ErrInvalidUTF8},
		{"Multibyte Kept", "olá ✓", "olá ✓", nil},
	}

	var p InputPolicy
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Normalize(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInputPolicy_SizeLimit(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		var p InputPolicy
		_, err := p.Normalize(strings.Repeat("a", DefaultMaxInputSize))
		assert.NoError(t, err)
		_, err = p.Normalize(strings.Repeat("a", DefaultMaxInputSize+1))
		assert.ErrorIs(t, err, ErrInputTooLarge)
	})

	t.Run("Custom", func(t *testing.T) {
		p := InputPolicy{MaxSize: 8}
		_, err := p.Normalize("12345678")
		assert.NoError(t, err)
		_, err = p.Normalize("123456789")
		assert.ErrorIs(t, err, ErrInputTooLarge)
	})

	t.Run("Checked Before Trim", func(t *testing.T) {
		// Padding counts against the limit even though it is trimmed away.
		p := InputPolicy{MaxSize: 4}
		_, err := p.Normalize("  hi  ")
		assert.ErrorIs(t, err, ErrInputTooLarge)
	})
}

func TestMaxInputSizeFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"10", 10},
		{"abc", 0},
		{"-5", 0},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvMaxInputSize, tt.value)
			assert.Equal(t, tt.want, MaxInputSizeFromEnv())
		})
	}
}
