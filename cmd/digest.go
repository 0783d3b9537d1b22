package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/digest"
	"github.com/newshound/newshound/internal/news"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Run scheduled news digests",
}

func init() {
	digestCmd.AddCommand(digestRunCmd)
	digestCmd.AddCommand(digestStartCmd)
	digestCmd.AddCommand(digestListCmd)
}

var digestRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute every configured digest once, now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newDigestService()
		if err != nil {
			return err
		}
		return svc.RunAll(cmd.Context())
	},
}

var digestStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the digest scheduler (blocks until interrupted)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newDigestService()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := svc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println("Digest scheduler stopped.")
		return nil
	},
}

var digestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured digests",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		if len(cfg.Digests) == 0 {
			fmt.Println("No digests configured. Add them under `digests:` in", config.ConfigPath())
			return nil
		}
		fmt.Printf("%-20s %-15s %-15s %-20s %s\n", "Name", "Schedule", "Category", "Search", "Max")
		for _, d := range cfg.Digests {
			fmt.Printf("%-20s %-15s %-15s %-20s %d\n",
				d.Name, d.Schedule, d.Category, d.SearchQuery, d.MaxArticles)
		}
		return nil
	},
}

func newDigestService() (*digest.Service, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	svc := news.NewService(news.NewHTTPBrowser(), cfg.Scraper, nil)
	return digest.NewService(svc, cfg.Digests, os.Stdout, nil), nil
}
