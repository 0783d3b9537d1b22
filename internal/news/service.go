package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/newshound/newshound/internal/config"
)

// RetrievalError reports a failed retrieval, carrying the underlying cause.
type RetrievalError struct {
	Stage string // "session", "navigate", "extract"
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("news retrieval failed (%s): %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Retriever is the request/response contract of the retrieval service.
// Consumers (tools, digests) depend on this rather than on Service.
type Retriever interface {
	Retrieve(ctx context.Context, q Query) ([]Article, error)
}

// Service composes the query builder, a browser session lifecycle and the
// article extractor into a single retrieval operation.
type Service struct {
	browser Browser
	cfg     config.ScraperConfig
	log     *slog.Logger
}

// NewService creates a Service. log may be nil, in which case the default
// slog logger is used.
func NewService(browser Browser, cfg config.ScraperConfig, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{browser: browser, cfg: cfg, log: log}
}

// Retrieve fetches articles matching q, capped at q.MaxArticles.
//
// The browser session is scoped to this call and released on every exit path.
// Any failure before extraction completes propagates as *RetrievalError; no
// automatic retry is attempted. A page that never shows article markers is
// not a failure: after a grace delay the extractor's own fallback chain takes
// over.
func (s *Service) Retrieve(ctx context.Context, q Query) ([]Article, error) {
	q = q.WithDefaults()
	start := time.Now()

	target := BuildURL(q)
	s.log.Info("News retrieval started",
		"language", q.Language, "country", q.Country,
		"category", q.Category, "search", q.SearchQuery,
		"maxArticles", q.MaxArticles)

	session, err := s.browser.NewSession(ctx)
	if err != nil {
		return nil, &RetrievalError{Stage: "session", Err: err}
	}
	defer session.Close()

	session.SetUserAgent(browserUserAgent)

	s.log.Info("Navigating", "url", target)
	if err := session.Navigate(ctx, target, s.cfg.NavigationTimeout.Std()); err != nil {
		return nil, &RetrievalError{Stage: "navigate", Err: err}
	}

	if !session.WaitForAny(ctx, ReadinessSelectors, s.cfg.ReadinessTimeout.Std()) {
		s.log.Warn("No article markers found, proceeding after grace delay",
			"delay", s.cfg.GraceDelay.Std())
		select {
		case <-time.After(s.cfg.GraceDelay.Std()):
		case <-ctx.Done():
			return nil, &RetrievalError{Stage: "navigate", Err: ctx.Err()}
		}
	}

	s.log.Debug("Page loaded", "title", session.Title())

	doc, err := session.Document()
	if err != nil {
		return nil, &RetrievalError{Stage: "extract", Err: err}
	}

	articles := ExtractArticles(doc, s.log)
	if len(articles) > q.MaxArticles {
		s.log.Info("Limiting results", "found", len(articles), "max", q.MaxArticles)
		articles = articles[:q.MaxArticles]
	}

	s.log.Info("News retrieval finished",
		"articles", len(articles), "elapsed", time.Since(start).Round(time.Millisecond))
	return articles, nil
}
