package news

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractArticles_ArticleElements(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<article>
				<h3>First headline</h3>
				<a href="/articles/abc123">link</a>
				<img src="https://img.example/1.png">
				<div class="wEwyrc">Reuters</div>
				<time datetime="2024-05-01T10:00:00Z">2 hours ago</time>
				<div class="GI74Re">Something happened.</div>
			</article>
			<article>
				<h3>Second headline</h3>
				<a href="https://example.com/story">link</a>
			</article>
		</body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "First headline" {
		t.Errorf("title: got %q", first.Title)
	}
	if first.Link != Origin+"/articles/abc123" {
		t.Errorf("relative link must resolve against origin, got %q", first.Link)
	}
	if first.Source != "Reuters" {
		t.Errorf("source: got %q", first.Source)
	}
	if first.PublishedTime == nil || *first.PublishedTime != "2024-05-01T10:00:00Z" {
		t.Errorf("publishedTime: got %v", first.PublishedTime)
	}
	if first.Description != "Something happened." {
		t.Errorf("description: got %q", first.Description)
	}
	if first.Image == nil || *first.Image != "https://img.example/1.png" {
		t.Errorf("image: got %v", first.Image)
	}

	if articles[1].Link != "https://example.com/story" {
		t.Errorf("absolute link must be kept as is, got %q", articles[1].Link)
	}
}

func TestExtractArticles_FirstStrategyWins(t *testing.T) {
	// Both <article> elements and .JtKRv elements exist; only the former
	// strategy's matches may be used.
	doc := parseHTML(t, `
		<html><body>
			<article><h3>From article tag</h3><a href="/articles/1">x</a></article>
			<div class="JtKRv">From class strategy<a href="/articles/2">x</a></div>
		</body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article (no merging across strategies), got %d", len(articles))
	}
	if articles[0].Title != "From article tag" {
		t.Errorf("got %q", articles[0].Title)
	}
}

func TestExtractArticles_AnchorFallback(t *testing.T) {
	// No container strategy matches here; the href of the first anchor only
	// textually suggests news content.
	doc := parseHTML(t, `
		<html><body>
			<a href="/foo/news/xyz"><h3>Fallback headline</h3></a>
			<a href="/about">not news</a>
		</body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article from anchor fallback, got %d", len(articles))
	}
	if articles[0].Title != "Fallback headline" {
		t.Errorf("got %q", articles[0].Title)
	}
	if articles[0].Link != Origin+"/foo/news/xyz" {
		t.Errorf("got link %q", articles[0].Link)
	}
}

func TestExtractArticles_TitleFromAncestor(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<div>
				<h3>Ancestor headline</h3>
				<article><a href="/articles/1">read</a></article>
			</div>
		</body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "Ancestor headline" {
		t.Errorf("expected title from enclosing block, got %q", articles[0].Title)
	}
}

func TestExtractArticles_TitleTruncationFallback(t *testing.T) {
	long := strings.Repeat("word ", 40) // 200 chars, no title selectors anywhere
	doc := parseHTML(t, `<html><body><article><span>`+long+`</span></article></body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	title := articles[0].Title
	if !strings.HasSuffix(title, "...") {
		t.Fatalf("truncated title must carry the marker, got %q", title)
	}
	if got := len([]rune(strings.TrimSuffix(title, "..."))); got != 100 {
		t.Errorf("expected 100 runes before the marker, got %d", got)
	}
}

func TestExtractArticles_EmptyCandidatesDropped(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<article></article>
			<article><h3>Kept</h3><a href="/articles/1">x</a></article>
		</body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("candidate with neither title nor link must be dropped, got %d", len(articles))
	}
	if articles[0].Title != "Kept" {
		t.Errorf("got %q", articles[0].Title)
	}
}

func TestExtractArticles_LinkOnlyGetsPlaceholderTitle(t *testing.T) {
	doc := parseHTML(t, `<html><body><article><a href="/articles/1"></a></article></body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "No title available" {
		t.Errorf("got %q", articles[0].Title)
	}
}

func TestExtractArticles_DocumentOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for _, name := range []string{"One", "Two", "Three"} {
		sb.WriteString(`<article><h3>` + name + `</h3><a href="/articles/x">x</a></article>`)
	}
	sb.WriteString("</body></html>")

	articles := ExtractArticles(parseHTML(t, sb.String()), nil)
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	for i, want := range []string{"One", "Two", "Three"} {
		if articles[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, articles[i].Title, want)
		}
	}
}

func TestExtractArticles_TimeTextWhenNoDatetime(t *testing.T) {
	doc := parseHTML(t, `<html><body><article><h3>T</h3><time>yesterday</time></article></body></html>`)

	articles := ExtractArticles(doc, nil)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].PublishedTime == nil || *articles[0].PublishedTime != "yesterday" {
		t.Errorf("got %v", articles[0].PublishedTime)
	}
}
