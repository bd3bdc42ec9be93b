package main

import (
	"fmt"
	"os"

	"github.com/aretw0/chatbot/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Export the dialogue graph visualization",
	Long: `Loads the graph and prints a Mermaid diagram (graph TD) of its nodes and keyword edges.
With --session the stored position of that session is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			_ = cmd.Flags().Set("dir", args[0])
		}
		sessionID, _ := cmd.Flags().GetString("session")
		logger := newLogger(cmd)

		bot, err := loadBot(cmd, logger, nil)
		if err != nil {
			fmt.Printf("Error loading bot: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if sessionID != "" {
			mgr, closeStore, err := newManager(cmd, logger)
			if err != nil {
				fmt.Printf("Error opening store: %v\n", err)
				os.Exit(1)
			}
			defer closeStore()

			snap, err := mgr.Load(cmd.Context(), sessionID)
			if err != nil {
				fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
				os.Exit(1)
			}
			overlay = graph.OverlayFromHistory(snap.History)
		}

		fmt.Print(graph.GenerateMermaid(bot.Graph, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the stored position of this session")
}
