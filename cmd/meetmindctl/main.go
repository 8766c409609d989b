// Package main implements meetmindctl, the operator CLI for the MeetMind API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meetmindctl",
	Short: "Operator tools for the MeetMind API",
	Long: `meetmindctl replays saved model output through the summary decoder,
manages the database schema and mints API tokens.

Configuration is read from the environment and an optional .env file, the
same way the API server reads it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}
