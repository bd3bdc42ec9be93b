package main

import (
	"fmt"

	"github.com/aretw0/chatbot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chatbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatbot version %s\n", chatbot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
