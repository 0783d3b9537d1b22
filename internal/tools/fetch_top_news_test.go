package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/newshound/newshound/internal/news"
)

// fakeRetriever records the query it received and returns scripted results.
type fakeRetriever struct {
	articles []news.Article
	err      error
	lastQ    news.Query
}

func (f *fakeRetriever) Retrieve(_ context.Context, q news.Query) ([]news.Article, error) {
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func decodeResult(t *testing.T, raw string) FetchNewsResult {
	t.Helper()
	var res FetchNewsResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("tool result is not valid JSON: %v\n%s", err, raw)
	}
	return res
}

func TestFetchTopNews_Success(t *testing.T) {
	retriever := &fakeRetriever{articles: []news.Article{
		{Title: "A", Link: "https://news.google.com/articles/1"},
		{Title: "B", Link: "https://news.google.com/articles/2"},
	}}
	tool := NewFetchTopNewsTool(retriever, 50, nil)

	raw, err := tool.Execute(context.Background(), map[string]any{
		"category":    "TECHNOLOGY",
		"maxArticles": float64(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := decodeResult(t, raw)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.TotalArticles != 2 || len(res.Articles) != 2 {
		t.Errorf("article count: %+v", res)
	}
	if res.Articles[0].ID != 1 || res.Articles[1].ID != 2 {
		t.Errorf("ids must be 1-based positions: %+v", res.Articles)
	}
	if res.Parameters.Category != "TECHNOLOGY" || res.Parameters.SearchQuery != "none" {
		t.Errorf("parameters echo: %+v", res.Parameters)
	}
	if retriever.lastQ.MaxArticles != 5 {
		t.Errorf("maxArticles not forwarded: %+v", retriever.lastQ)
	}
}

func TestFetchTopNews_DefaultsEchoed(t *testing.T) {
	retriever := &fakeRetriever{}
	tool := NewFetchTopNewsTool(retriever, 50, nil)

	raw, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := decodeResult(t, raw)
	p := res.Parameters
	if p.Language != "en-US" || p.Country != "US" || p.MaxArticles != 10 {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.Category != "general" || p.SearchQuery != "none" {
		t.Errorf("absent optionals must echo placeholders: %+v", p)
	}
}

func TestFetchTopNews_CapApplied(t *testing.T) {
	retriever := &fakeRetriever{}
	tool := NewFetchTopNewsTool(retriever, 20, nil)

	if _, err := tool.Execute(context.Background(), map[string]any{"maxArticles": float64(500)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retriever.lastQ.MaxArticles != 20 {
		t.Errorf("cap not applied: %+v", retriever.lastQ)
	}
}

func TestFetchTopNews_RetrievalFailure(t *testing.T) {
	retriever := &fakeRetriever{err: &news.RetrievalError{Stage: "navigate", Err: errors.New("timeout")}}
	tool := NewFetchTopNewsTool(retriever, 50, nil)

	raw, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("expected failure inside the payload, not a Go error: %v", err)
	}

	res := decodeResult(t, raw)
	if res.Success {
		t.Fatal("expected success=false")
	}
	if res.Error == "" {
		t.Error("error description missing")
	}
	if res.Articles == nil || len(res.Articles) != 0 {
		t.Errorf("failure payload must carry an empty article list: %+v", res.Articles)
	}
}

func TestFetchTopNews_InvalidArgumentType(t *testing.T) {
	retriever := &fakeRetriever{}
	tool := NewFetchTopNewsTool(retriever, 50, nil)

	raw, err := tool.Execute(context.Background(), map[string]any{"maxArticles": "ten"})
	if err != nil {
		t.Fatalf("invalid arguments must not be a Go error: %v", err)
	}

	res := decodeResult(t, raw)
	if res.Success {
		t.Fatal("expected success=false for malformed arguments")
	}
	if res.Error == "" {
		t.Error("error description missing")
	}
}

func TestRegistry_FixedMapping(t *testing.T) {
	registry := NewRegistry(
		NewFetchTopNewsTool(&fakeRetriever{}, 50, nil),
		NewReadArticleTool(0),
	)

	if registry.Get("fetch_top_news") == nil {
		t.Error("fetch_top_news missing")
	}
	if registry.Get("read_article") == nil {
		t.Error("read_article missing")
	}
	if registry.Get("book_flight") != nil {
		t.Error("unknown name must resolve to nil")
	}

	defs := registry.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "fetch_top_news" || defs[1].Name != "read_article" {
		t.Errorf("definitions must preserve registration order: %+v", defs)
	}
	for _, d := range defs {
		var params map[string]any
		if err := json.Unmarshal(d.Parameters, &params); err != nil {
			t.Errorf("%s: parameters are not valid JSON Schema: %v", d.Name, err)
		}
	}
}
