package digest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/news"
)

type fakeRetriever struct {
	mu      sync.Mutex
	queries []news.Query
	err     error
}

func (f *fakeRetriever) Retrieve(_ context.Context, q news.Query) ([]news.Article, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []news.Article{{Title: "Headline for " + q.Category, Link: "https://news.google.com/articles/1", Source: "Wire"}}, nil
}

func TestRunAll(t *testing.T) {
	retriever := &fakeRetriever{}
	var out strings.Builder
	svc := NewService(retriever, []config.DigestConfig{
		{Name: "tech", Schedule: "0 8 * * *", Category: "TECHNOLOGY", MaxArticles: 5},
		{Name: "sports", Schedule: "0 9 * * *", Category: "SPORTS", MaxArticles: 5},
	}, &out, nil)

	if err := svc.RunAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retriever.queries) != 2 {
		t.Fatalf("expected 2 retrievals, got %d", len(retriever.queries))
	}
	if !strings.Contains(out.String(), "Digest: tech") || !strings.Contains(out.String(), "Digest: sports") {
		t.Errorf("digest headers missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "Headline for TECHNOLOGY") {
		t.Errorf("articles missing: %q", out.String())
	}
}

func TestRunAll_PropagatesFailure(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("boom")}
	var out strings.Builder
	svc := NewService(retriever, []config.DigestConfig{
		{Name: "tech", Schedule: "0 8 * * *", Category: "TECHNOLOGY"},
	}, &out, nil)

	if err := svc.RunAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunAll_NoDigests(t *testing.T) {
	svc := NewService(&fakeRetriever{}, nil, &strings.Builder{}, nil)
	if err := svc.RunAll(context.Background()); err == nil {
		t.Fatal("expected error when nothing is configured")
	}
}
