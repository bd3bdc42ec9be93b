package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check the graph for consistency",
	Long:  `Loads the graph and reports a missing root, nodes without answers, edges without keywords and nodes unreachable from the root.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			_ = cmd.Flags().Set("dir", args[0])
		}
		if err := runValidate(cmd); err != nil {
			fmt.Println("Validation failed:")
			printJoined(err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	bot, err := loadBot(cmd, newLogger(cmd), nil)
	if err != nil {
		return err
	}
	return bot.Validate()
}

// printJoined prints each error of an errors.Join on its own line.
func printJoined(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Printf("  - %v\n", e)
		}
		return
	}
	fmt.Printf("  - %v\n", err)
}
