package news

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Google News rebuilds its markup frequently, so every extraction step is an
// ordered list of selectors tried until one matches. Reorder or extend the
// tables here rather than adding branches to the extraction code.
var (
	// containerStrategies locate candidate article elements. The first
	// strategy with at least one match wins; results are never merged
	// across strategies.
	containerStrategies = []string{
		"article",
		"[data-n-tid]",
		".JtKRv",
		".xrnccd",
		".Ft7HRd-LgbsSe",
		".SoAPf",
		".ipQwMb",
		".mCBkyc",
		`a[href*="/articles/"]`,
		`a[href*="/stories/"]`,
	}

	titleSelectors = []string{
		"h3",
		"h4",
		`[role="heading"]`,
		".ipQwMb",
		".JtKRv",
		".mCBkyc",
		".DY5T1d",
		".MQsxIb",
		".RZIKme",
	}

	sourceSelectors = []string{
		"[data-n-tid]",
		".QmrVtf",
		".wEwyrc",
		".SVJrMe",
		".vr1PYe",
		".CEMjEf",
		".WlydOe",
	}

	descriptionSelectors = []string{
		".GI74Re",
		".st",
		".Y3v8qd",
		".xBjp9b",
		".UOVeFe",
	}

	// ReadinessSelectors signal that article content has rendered.
	ReadinessSelectors = []string{"article", "[data-n-tid]", ".JtKRv"}
)

const (
	titleTruncateLen = 100
	fallbackTitle    = "No title available"
)

// ExtractArticles pulls every candidate article out of doc, in document
// order. The caller truncates; no maximum is applied here. Candidates with
// neither title nor link are dropped silently, and a failure while reading a
// single candidate skips that candidate rather than aborting the batch.
func ExtractArticles(doc *goquery.Document, log *slog.Logger) []Article {
	if log == nil {
		log = slog.Default()
	}

	candidates, strategy := findCandidates(doc)
	log.Debug("Container discovery", "strategy", strategy, "candidates", len(candidates))

	articles := make([]Article, 0, len(candidates))
	for _, sel := range candidates {
		article, ok := extractCandidate(sel)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}
	return articles
}

// findCandidates runs the container strategies in order and returns the
// matches of the first one that yields anything, plus the strategy used.
// When every strategy misses it falls back to scanning all hyperlinks whose
// target looks like an article or story.
func findCandidates(doc *goquery.Document) ([]*goquery.Selection, string) {
	for _, strategy := range containerStrategies {
		nodes := doc.Find(strategy)
		if nodes.Length() > 0 {
			return splitSelection(nodes), strategy
		}
	}

	var out []*goquery.Selection
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, "/articles/") ||
			strings.Contains(href, "/stories/") ||
			strings.Contains(href, "news") {
			out = append(out, s)
		}
	})
	return out, "anchor-fallback"
}

// splitSelection breaks a combined selection into per-element selections.
func splitSelection(nodes *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// extractCandidate reads one candidate element. ok is false when the
// candidate has neither title nor link, or reading it panicked.
func extractCandidate(sel *goquery.Selection) (article Article, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	title := extractTitle(sel)
	link := extractLink(sel)

	// Keep only candidates with at least a title or a link.
	if title == "" && link == "" {
		return Article{}, false
	}
	if title == "" {
		title = fallbackTitle
	}

	article = Article{
		Title:         title,
		Description:   firstText(sel, descriptionSelectors),
		Link:          link,
		Image:         extractImage(sel),
		Source:        firstText(sel, sourceSelectors),
		PublishedTime: extractTime(sel),
		Category:      nil,
	}
	return article, true
}

// extractTitle tries the title selectors inside the element, then the same
// selectors against the nearest enclosing block/section/list-item, and as a
// last resort derives a title from the element's own text content.
func extractTitle(sel *goquery.Selection) string {
	if title := firstText(sel, titleSelectors); title != "" {
		return title
	}

	if parent := sel.Closest("div, section, li"); parent.Length() > 0 {
		if title := firstText(parent, titleSelectors); title != "" {
			return title
		}
	}

	if text := strings.TrimSpace(sel.Text()); text != "" {
		return truncateRunes(text, titleTruncateLen) + "..."
	}
	return ""
}

// extractLink prefers the element's own href, then a nested anchor.
// Root-relative links are resolved against Origin.
func extractLink(sel *goquery.Selection) string {
	link, exists := sel.Attr("href")
	if !exists {
		link, _ = sel.Find("a[href]").First().Attr("href")
	}
	if strings.HasPrefix(link, "/") {
		link = Origin + link
	}
	return link
}

func extractImage(sel *goquery.Selection) *string {
	src, exists := sel.Find("img").First().Attr("src")
	if !exists || src == "" {
		return nil
	}
	return &src
}

// extractTime prefers the datetime attribute of a time element, else its text.
func extractTime(sel *goquery.Selection) *string {
	node := sel.Find("time, [datetime]").First()
	if node.Length() == 0 {
		return nil
	}
	if dt, ok := node.Attr("datetime"); ok && dt != "" {
		return &dt
	}
	if text := strings.TrimSpace(node.Text()); text != "" {
		return &text
	}
	return nil
}

// firstText returns the trimmed text of the first selector producing
// non-empty text, scanning selectors in order and stopping at the first hit.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
