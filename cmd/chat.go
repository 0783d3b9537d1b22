package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/dependency"
)

var chatConfigPath string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with the news agent",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatConfigPath, "config", "c", "", "Config file path (default ~/.newshound/config.yaml)")
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(chatConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := container.DialogueLoop().Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nGoodbye!")
			return nil
		}
		return err
	}
	return nil
}
