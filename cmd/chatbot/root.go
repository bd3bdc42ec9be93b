package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/chatbot"
	"github.com/aretw0/chatbot/internal/logging"
	"github.com/aretw0/chatbot/pkg/adapters/file"
	redisAdapter "github.com/aretw0/chatbot/pkg/adapters/redis"
	yamlAdapter "github.com/aretw0/chatbot/pkg/adapters/yaml"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/persistence/middleware"
	"github.com/aretw0/chatbot/pkg/ports"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Chatbot is a keyword driven dialogue engine",
	Long:  `Chatbot walks a dialogue graph written as Markdown files (or a YAML document), choosing the edge whose keyword is closest to what you typed.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	registerGlobalFlags(rootCmd)
}

// registerGlobalFlags declares the persistent flags available to all commands.
func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("dir", ".", "Directory containing the graph documents")
	cmd.PersistentFlags().String("graph", "", "YAML graph file, used instead of --dir documents")
	cmd.PersistentFlags().String("avatar", "", "Image file the bot carries (png, jpeg or gif)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().Uint64("seed", 0, "Seed for answer selection (random when unset)")
	cmd.PersistentFlags().String("store", "file", "Session store: 'file' or 'redis'")
	cmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (only for --store redis)")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return logging.New(level)
}

// loadBot builds the bot described by the persistent flags.
func loadBot(cmd *cobra.Command, logger *slog.Logger, metrics *observability.Metrics) (*chatbot.Bot, error) {
	dir, _ := cmd.Flags().GetString("dir")
	graphFile, _ := cmd.Flags().GetString("graph")
	avatar, _ := cmd.Flags().GetString("avatar")

	opts := []chatbot.Option{chatbot.WithLogger(logger), chatbot.WithMetrics(metrics)}
	if graphFile != "" {
		opts = append(opts, chatbot.WithLoader(yamlAdapter.New(graphFile)))
	}
	if avatar != "" {
		opts = append(opts, chatbot.WithAvatar(avatar))
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, chatbot.WithSeed(seed))
	}
	return chatbot.New(dir, opts...)
}

// Environment variables holding base64 AES-256 keys for encrypting stored sessions.
const (
	envStoreKey          = "CHATBOT_STORE_KEY"
	envStoreFallbackKeys = "CHATBOT_STORE_FALLBACK_KEYS"
)

// getStore opens the session store selected by --store.
// File sessions live in <dir>/.chatbot/sessions. Snapshots are encrypted when
// CHATBOT_STORE_KEY is set.
func getStore(cmd *cobra.Command) (ports.SnapshotStore, []session.ManagerOption, func(), error) {
	var (
		store   ports.SnapshotStore
		opts    []session.ManagerOption
		closeFn = func() {}
	)

	kind, _ := cmd.Flags().GetString("store")
	switch kind {
	case "file":
		projectDir, _ := cmd.Flags().GetString("dir")
		if projectDir == "" {
			projectDir = "."
		}
		store = file.New(filepath.Join(projectDir, ".chatbot", "sessions"))
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		rs := redisAdapter.New(addr, "", 0)
		opts = append(opts, session.WithLocker(redisAdapter.NewLocker(rs.Client(), redisAdapter.DefaultPrefix)))
		closeFn = func() { _ = rs.Close() }
		store = rs
	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q, supported: file, redis", kind)
	}

	cfg, ok, err := encryptionFromEnv()
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	if ok {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(cfg))
	}
	return store, opts, closeFn, nil
}

func encryptionFromEnv() (middleware.EncryptionConfig, bool, error) {
	active := os.Getenv(envStoreKey)
	if active == "" {
		return middleware.EncryptionConfig{}, false, nil
	}
	key, err := base64.StdEncoding.DecodeString(active)
	if err != nil {
		return middleware.EncryptionConfig{}, false, fmt.Errorf("%s: %w", envStoreKey, err)
	}
	cfg := middleware.EncryptionConfig{ActiveKey: key}
	for _, raw := range strings.Split(os.Getenv(envStoreFallbackKeys), ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		k, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return middleware.EncryptionConfig{}, false, fmt.Errorf("%s: %w", envStoreFallbackKeys, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, k)
	}
	if err := cfg.Validate(); err != nil {
		return middleware.EncryptionConfig{}, false, err
	}
	return cfg, true, nil
}

// newManager wraps the selected store in a session Manager.
func newManager(cmd *cobra.Command, logger *slog.Logger) (*session.Manager, func(), error) {
	store, opts, closeFn, err := getStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, session.WithManagerLogger(logger))
	return session.NewManager(store, opts...), closeFn, nil
}
