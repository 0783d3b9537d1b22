package news

import (
	"strings"
	"testing"
)

func TestBuildURL_SearchTakesPrecedence(t *testing.T) {
	u := BuildURL(Query{SearchQuery: "climate change", Category: "TECHNOLOGY"})
	if !strings.HasPrefix(u, Origin+"/search?q=climate+change") {
		t.Fatalf("expected search URL, got %q", u)
	}
	if strings.Contains(u, "topics/") {
		t.Errorf("category must be ignored when a search query is present: %q", u)
	}
}

func TestBuildURL_SearchEscaping(t *testing.T) {
	u := BuildURL(Query{SearchQuery: "AI & jobs"})
	if !strings.Contains(u, "q=AI+%26+jobs") {
		t.Errorf("search text not escaped: %q", u)
	}
}

func TestBuildURL_Category(t *testing.T) {
	u := BuildURL(Query{Category: "TECHNOLOGY"})
	if !strings.Contains(u, "/topics/") {
		t.Fatalf("expected category URL, got %q", u)
	}
}

func TestBuildURL_CategoryCaseInsensitive(t *testing.T) {
	upper := BuildURL(Query{Category: "SPORTS"})
	lower := BuildURL(Query{Category: "sports"})
	if upper != lower {
		t.Errorf("category lookup must be case-insensitive: %q vs %q", upper, lower)
	}
}

func TestBuildURL_UnknownCategoryFallsThrough(t *testing.T) {
	u := BuildURL(Query{Category: "KNITTING"})
	if !strings.HasPrefix(u, Origin+"/home?") {
		t.Fatalf("unknown category must yield the home URL, got %q", u)
	}
}

func TestBuildURL_Default(t *testing.T) {
	u := BuildURL(Query{})
	want := Origin + "/home?hl=en-US&gl=US&ceid=US:en"
	if u != want {
		t.Errorf("got %q, want %q", u, want)
	}
}

func TestBuildURL_LocaleEdition(t *testing.T) {
	u := BuildURL(Query{Language: "es-ES", Country: "ES"})
	if !strings.Contains(u, "ceid=ES:es") {
		t.Errorf("expected derived locale edition ES:es, got %q", u)
	}
}

func TestWithDefaults(t *testing.T) {
	q := Query{}.WithDefaults()
	if q.Language != "en-US" || q.Country != "US" || q.MaxArticles != 10 {
		t.Errorf("unexpected defaults: %+v", q)
	}

	q = Query{Language: "ja-JP", Country: "JP", MaxArticles: 3}.WithDefaults()
	if q.Language != "ja-JP" || q.Country != "JP" || q.MaxArticles != 3 {
		t.Errorf("explicit values must be kept: %+v", q)
	}
}

func TestAvailableCategoriesAllResolve(t *testing.T) {
	for _, c := range AvailableCategories() {
		if _, ok := categoryTopics[c]; !ok {
			t.Errorf("category %q has no topic mapping", c)
		}
	}
}
