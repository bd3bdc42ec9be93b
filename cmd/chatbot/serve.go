package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/chatbot/pkg/adapters/http"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one chat session over HTTP",
	Long: `Starts the bot behind a JSON API. POST /messages talks to the session,
GET /events streams replies, /graph and /graph/mermaid describe the graph and /metrics exposes Prometheus metrics.
The API is described by /openapi.yaml and browsable at /swagger.
The session is checkpointed to the selected store after every message.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		logger := newLogger(cmd)

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(registry)

		bot, err := loadBot(cmd, logger, metrics)
		if err != nil {
			fmt.Printf("Error loading bot: %v\n", err)
			os.Exit(1)
		}

		mgr, closeStore, err := newManager(cmd, logger)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		relay := runner.NewRelay(runner.WithRelayMaxInputSize(runner.MaxInputSizeFromEnv()))
		s, err := bot.Resume(cmd.Context(), mgr, sessionID, relay)
		if err != nil {
			fmt.Printf("Error starting session: %v\n", err)
			os.Exit(1)
		}
		defer s.Release()
		// The greeting of a fresh session is not part of any response.
		relay.Drain()

		handler := httpAdapter.NewServer(bot.Graph, relay,
			httpAdapter.WithManager(mgr),
			httpAdapter.WithGatherer(registry),
			httpAdapter.WithLogger(logger),
		).Handler()

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Chatbot Server on %s\n", srv.Addr)
			fmt.Printf("Session: %s\n", sessionID)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Chatbot Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("session", "", "Session ID to serve (random when unset)")
}
