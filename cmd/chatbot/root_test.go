package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/chatbot/internal/testutils"
	"github.com/aretw0/chatbot/pkg/adapters/file"
	"github.com/aretw0/chatbot/pkg/persistence/middleware"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCommand builds a command with the global flags, parsed from args.
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadBot_Directory(t *testing.T) {
	dir := testutils.GreetingDir(t)
	cmd := newTestCommand(t, "--dir", dir, "--seed", "3")

	bot, err := loadBot(cmd, newLogger(cmd), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, bot.Graph.Len())
	assert.NoError(t, bot.Validate())
}

func TestLoadBot_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	testutils.WriteFiles(t, filepath.Dir(path), map[string]string{
		"bot.yaml": "root: 1\nnodes:\n  - id: 1\n    answers: [hi]\n",
	})
	cmd := newTestCommand(t, "--graph", path)

	bot, err := loadBot(cmd, newLogger(cmd), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bot.Graph.Root().ID)
}

func TestGetStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("File", func(t *testing.T) {
		cmd := newTestCommand(t, "--dir", dir)
		store, opts, closeFn, err := getStore(cmd)
		require.NoError(t, err)
		defer closeFn()
		assert.Empty(t, opts)
		fs, ok := store.(*file.Store)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, ".chatbot", "sessions"), fs.BasePath)
	})

	t.Run("Encrypted", func(t *testing.T) {
		t.Setenv(envStoreKey, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, middleware.KeySize)))
		cmd := newTestCommand(t, "--dir", dir)
		store, _, closeFn, err := getStore(cmd)
		require.NoError(t, err)
		defer closeFn()
		_, plain := store.(*file.Store)
		assert.False(t, plain)
	})

	t.Run("Bad Key", func(t *testing.T) {
		t.Setenv(envStoreKey, base64.StdEncoding.EncodeToString([]byte("short")))
		cmd := newTestCommand(t, "--dir", dir)
		_, _, _, err := getStore(cmd)
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		cmd := newTestCommand(t, "--store", "sqlite")
		_, _, _, err := getStore(cmd)
		assert.ErrorContains(t, err, "unknown store")
	})
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"1.md": "---\nroot: true\n---\nHello",
		"2.md": "---\nedges: []\n---\n",
	})
	cmd := newTestCommand(t, "--dir", dir)

	err := runValidate(cmd)
	require.Error(t, err)
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}
