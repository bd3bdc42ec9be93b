package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/chatbot/internal/presentation/tui"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat [path]",
	Short: "Talk to the bot in the terminal",
	Long: `Starts an interactive conversation on stdin/stdout. Type 'exit' or press Ctrl+D to leave.

With --session the position is restored on start and saved on exit.`,
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

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		opts := []runner.Option{
			runner.WithLogger(logger),
			runner.WithMaxInputSize(runner.MaxInputSizeFromEnv()),
		}
		if interactive {
			tui.PrintBanner(os.Stdout)
			opts = append(opts, runner.WithRenderer(tui.NewRenderer()))
		} else {
			opts = append(opts, runner.WithPrompt(""))
		}
		chat := runner.NewChat(os.Stdout, opts...)

		sm := runner.NewSignalManager(context.Background())
		defer sm.Stop()

		var (
			s   *session.Session
			mgr *session.Manager
		)
		if sessionID != "" {
			m, closeStore, storeErr := newManager(cmd, logger)
			if storeErr != nil {
				fmt.Printf("Error opening store: %v\n", storeErr)
				os.Exit(1)
			}
			defer closeStore()
			mgr = m
			s, err = bot.Resume(sm.Context(), mgr, sessionID, chat)
		} else {
			s, err = bot.Start(chat)
		}
		if err != nil {
			fmt.Printf("Error starting session: %v\n", err)
			os.Exit(1)
		}

		runErr := chat.Run(sm.Context(), os.Stdin)

		// The live handle may have changed while chatting.
		if live := chat.Active(); live != nil {
			s = live
		}
		if mgr != nil {
			if err := mgr.Checkpoint(context.Background(), s); err != nil {
				fmt.Printf("Error saving session: %v\n", err)
			}
		}
		s.Release()

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			fmt.Printf("Error: %v\n", runErr)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "Session ID to restore and save")
}
