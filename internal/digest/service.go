// Package digest runs scheduled news retrievals defined in the config file.
package digest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	robfigcron "github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/news"
)

// Service schedules configured digests with robfig/cron and prints each
// batch of articles as it arrives.
type Service struct {
	retriever news.Retriever
	digests   []config.DigestConfig
	out       io.Writer
	outMu     sync.Mutex // digests may run concurrently; keep batches unbroken
	log       *slog.Logger
	cron      *robfigcron.Cron
}

// NewService creates a digest Service writing results to out.
func NewService(retriever news.Retriever, digests []config.DigestConfig, out io.Writer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		retriever: retriever,
		digests:   digests,
		out:       out,
		log:       log,
		cron:      robfigcron.New(),
	}
}

// Start registers every configured digest and blocks until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if len(s.digests) == 0 {
		return fmt.Errorf("no digests configured")
	}

	for _, d := range s.digests {
		d := d
		if _, err := s.cron.AddFunc(d.Schedule, func() {
			if err := s.runOne(ctx, d); err != nil {
				s.log.Error("Digest failed", "name", d.Name, "err", err)
			}
		}); err != nil {
			return fmt.Errorf("schedule digest %q (%s): %w", d.Name, d.Schedule, err)
		}
		s.log.Info("Digest scheduled", "name", d.Name, "schedule", d.Schedule)
	}

	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return ctx.Err()
}

// RunAll executes every configured digest once, immediately. Digests are
// independent retrievals, so a few may run concurrently.
func (s *Service) RunAll(ctx context.Context) error {
	if len(s.digests) == 0 {
		return fmt.Errorf("no digests configured")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, d := range s.digests {
		d := d
		g.Go(func() error {
			if err := s.runOne(ctx, d); err != nil {
				return fmt.Errorf("digest %q: %w", d.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) runOne(ctx context.Context, d config.DigestConfig) error {
	start := time.Now()

	articles, err := s.retriever.Retrieve(ctx, news.Query{
		Language:    d.Language,
		Country:     d.Country,
		MaxArticles: d.MaxArticles,
		Category:    d.Category,
		SearchQuery: d.SearchQuery,
	})
	if err != nil {
		return err
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	fmt.Fprintf(s.out, "\n=== Digest: %s (%s) ===\n", d.Name, time.Now().Format(time.RFC822))
	for i, a := range articles {
		fmt.Fprintf(s.out, "%2d. %s\n", i+1, a.Title)
		if a.Source != "" {
			fmt.Fprintf(s.out, "    %s", a.Source)
			if a.PublishedTime != nil {
				fmt.Fprintf(s.out, " — %s", *a.PublishedTime)
			}
			fmt.Fprintln(s.out)
		}
		if a.Link != "" {
			fmt.Fprintf(s.out, "    %s\n", a.Link)
		}
	}

	s.log.Info("Digest finished", "name", d.Name, "articles", len(articles),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
