package main

import (
	"fmt"
	"os"

	"github.com/aretw0/chatbot"
	"github.com/aretw0/chatbot/pkg/adapters/mcp"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [path]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the bot as an MCP server on stdio.
Agents talk to the session with the send_message tool and read the graph through resources.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			_ = cmd.Flags().Set("dir", args[0])
		}
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := newLogger(cmd)

		bot, err := loadBot(cmd, logger, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading bot: %v\n", err)
			os.Exit(1)
		}

		mgr, closeStore, err := newManager(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		relay := runner.NewRelay(runner.WithRelayMaxInputSize(runner.MaxInputSizeFromEnv()))
		s, err := bot.Resume(cmd.Context(), mgr, sessionID, relay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
			os.Exit(1)
		}
		defer s.Release()
		relay.Drain()

		srv := mcp.NewServer(bot.Graph, relay, chatbot.Version,
			mcp.WithManager(mgr),
			mcp.WithLogger(logger),
		)

		logger.Info("Starting Chatbot MCP Server (Stdio)...", "session_id", sessionID)
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("session", "", "Session ID to serve (random when unset)")
}
