// Package cmd implements the newshound CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "📰"

var verboseLogs bool

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "newshound",
	Short: logo + " newshound — conversational news agent",
	Long:  logo + " newshound — an AI agent that fetches and discusses news from Google News",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Best effort: a missing .env is fine, the environment may already
		// carry the credentials.
		_ = godotenv.Load()

		level := slog.LevelWarn
		if verboseLogs {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&verboseLogs, "logs", false, "Show runtime logs")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(digestCmd)
}
