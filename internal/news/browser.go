package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxRedirects     = 5
)

// Browser creates page sessions. It is the boundary to the page-access
// collaborator; tests substitute a fake, production uses NewHTTPBrowser.
type Browser interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session is one scoped page visit. It is acquired per retrieval, never
// pooled, and must be closed on every exit path.
type Session interface {
	SetUserAgent(ua string)
	// Navigate loads url, bounded by timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// WaitForAny reports whether any of the selectors matched content within
	// timeout. Returning false is not an error: the caller decides whether to
	// proceed anyway.
	WaitForAny(ctx context.Context, selectors []string, timeout time.Duration) bool
	// Document returns the loaded page structure for extraction.
	Document() (*goquery.Document, error)
	Title() string
	Close() error
}

// httpBrowser is the default Browser: plain HTTP fetch parsed into a
// selector-queryable document.
type httpBrowser struct {
	client *http.Client
}

// NewHTTPBrowser returns the production Browser implementation.
func NewHTTPBrowser() Browser {
	return &httpBrowser{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

func (b *httpBrowser) NewSession(_ context.Context) (Session, error) {
	return &httpSession{client: b.client, userAgent: browserUserAgent}, nil
}

type httpSession struct {
	client    *http.Client
	userAgent string
	doc       *goquery.Document
}

func (s *httpSession) SetUserAgent(ua string) {
	if ua != "" {
		s.userAgent = ua
	}
}

func (s *httpSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("navigation failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	s.doc = doc
	return nil
}

// WaitForAny checks the fetched document for any of the selectors. The page
// is static once fetched, so a miss resolves immediately rather than after
// the full timeout; the retrieval service applies its grace delay on top.
func (s *httpSession) WaitForAny(_ context.Context, selectors []string, _ time.Duration) bool {
	if s.doc == nil {
		return false
	}
	for _, sel := range selectors {
		if s.doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

func (s *httpSession) Document() (*goquery.Document, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return s.doc, nil
}

func (s *httpSession) Title() string {
	if s.doc == nil {
		return ""
	}
	return s.doc.Find("title").First().Text()
}

func (s *httpSession) Close() error {
	s.doc = nil
	return nil
}
