package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const readerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ReadArticleTool fetches a single article URL and returns its readable text,
// so the model can summarise or answer questions about a story surfaced by
// fetch_top_news.
type ReadArticleTool struct {
	maxChars   int
	httpClient *http.Client
}

// NewReadArticleTool creates a ReadArticleTool. maxChars defaults to 50000.
func NewReadArticleTool(maxChars int) *ReadArticleTool {
	if maxChars <= 0 {
		maxChars = 50000
	}
	return &ReadArticleTool{
		maxChars: maxChars,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
	}
}

func (t *ReadArticleTool) Name() string { return string(ToolReadArticle) }

func (t *ReadArticleTool) Description() string {
	return "Fetch a news article URL and return its readable text content"
}

func (t *ReadArticleTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": {
				"type": "string",
				"description": "Article URL, typically a link from a previous fetch_top_news result"
			},
			"maxChars": {
				"type": "number",
				"description": "Maximum characters of article text to return"
			}
		},
		"required": ["url"]
	}`)
}

func (t *ReadArticleTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	rawURL, _ := params["url"].(string)
	if rawURL == "" {
		return readerError(rawURL, fmt.Errorf("invalid argument: url is required")), nil
	}
	if err := validateArticleURL(rawURL); err != nil {
		return readerError(rawURL, err), nil
	}

	maxChars := t.maxChars
	if raw, ok := params["maxChars"]; ok {
		switch v := raw.(type) {
		case float64:
			maxChars = int(v)
		case int:
			maxChars = v
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return readerError(rawURL, err), nil
	}
	req.Header.Set("User-Agent", readerUserAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return readerError(rawURL, err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return readerError(rawURL, err), nil
	}

	parsedURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)

	var title, text string
	if err == nil {
		title = article.Title
		text = stripHTMLTags(article.Content)
	} else {
		// Readability gave up; degrade to stripped page text.
		text = stripHTMLTags(string(body))
	}

	truncated := len(text) > maxChars
	if truncated {
		text = text[:maxChars]
	}

	out, _ := json.Marshal(map[string]any{
		"success":   true,
		"url":       rawURL,
		"finalUrl":  resp.Request.URL.String(),
		"status":    resp.StatusCode,
		"title":     title,
		"truncated": truncated,
		"length":    len(text),
		"text":      text,
	})
	return string(out), nil
}

// validateArticleURL checks that rawURL is http(s) with a valid domain.
func validateArticleURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("only http/https allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing domain in URL")
	}
	return nil
}

func readerError(rawURL string, err error) string {
	out, _ := json.Marshal(map[string]any{
		"success": false,
		"url":     rawURL,
		"error":   err.Error(),
	})
	return string(out)
}

var (
	reScript   = regexp.MustCompile(`(?is)<script[\s\S]*?</script>`)
	reStyle    = regexp.MustCompile(`(?is)<style[\s\S]*?</style>`)
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripHTMLTags removes all HTML tags and normalizes whitespace.
func stripHTMLTags(text string) string {
	text = reScript.ReplaceAllString(text, "")
	text = reStyle.ReplaceAllString(text, "")
	text = reTags.ReplaceAllString(text, "")
	text = reSpaces.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
