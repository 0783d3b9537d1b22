// Package news retrieves structured article records from Google News.
//
// The package is split along the retrieval pipeline: Query builds the target
// URL, Browser abstracts the page-access collaborator, the extractor pulls
// Articles out of a loaded page, and Service composes the three into a
// single request/response operation.
package news

import (
	"fmt"
	"net/url"
	"strings"
)

// Origin is the target site; relative article links resolve against it.
const Origin = "https://news.google.com"

// Query is a structured news request. Zero values fall back to the defaults
// applied by WithDefaults; an unrecognized Category is treated as "no
// category", never as an error.
type Query struct {
	Language    string // e.g. "en-US"
	Country     string // e.g. "US"
	MaxArticles int
	Category    string // one of AvailableCategories, case-insensitive
	SearchQuery string
}

const (
	DefaultLanguage    = "en-US"
	DefaultCountry     = "US"
	DefaultMaxArticles = 10
)

// WithDefaults returns a copy of q with unset fields replaced by defaults.
func (q Query) WithDefaults() Query {
	if q.Language == "" {
		q.Language = DefaultLanguage
	}
	if q.Country == "" {
		q.Country = DefaultCountry
	}
	if q.MaxArticles <= 0 {
		q.MaxArticles = DefaultMaxArticles
	}
	return q
}

// categoryTopics maps an upper-case category name to its Google News topic path.
var categoryTopics = map[string]string{
	"TECHNOLOGY":    "topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRFZxYUdjU0FtVnVHZ0pWVXlnQVAB",
	"SPORTS":        "topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRFp1ZEdvU0FtVnVHZ0pWVXlnQVAB",
	"HEALTH":        "topics/CAAqJQgKIh9DQkFTRVFvSUwyMHZNR3QwTlRFU0FtVnVHZ0pWVXlnQVAB",
	"BUSINESS":      "topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtVnVHZ0pWVXlnQVAB",
	"ENTERTAINMENT": "topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNREpxYW5RU0FtVnVHZ0pWVXlnQVAB",
	"SCIENCE":       "topics/CAAqKAgKIiJDQkFTRXdvSUwyMHZNRFp0Y1RjU0FtVnVHZ0pWVXlnQVAB",
	"WORLD":         "topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx1YlY4U0FtVnVHZ0pWVXlnQVAB",
}

// AvailableCategories lists the supported category names.
func AvailableCategories() []string {
	return []string{
		"TECHNOLOGY",
		"SPORTS",
		"HEALTH",
		"BUSINESS",
		"ENTERTAINMENT",
		"SCIENCE",
		"WORLD",
	}
}

// AvailableLanguages maps supported language codes to their country codes.
func AvailableLanguages() map[string][]string {
	return map[string][]string{
		"en-US": {"US"},
		"es-ES": {"ES"},
		"fr-FR": {"FR"},
		"de-DE": {"DE"},
		"it-IT": {"IT"},
		"pt-BR": {"BR"},
		"ja-JP": {"JP"},
		"ko-KR": {"KR"},
		"zh-CN": {"CN"},
		"ru-RU": {"RU"},
	}
}

// BuildURL turns q into the single navigable Google News location.
//
// A non-empty SearchQuery always wins over Category; an unrecognized Category
// silently falls through to the home page. Every variant carries the hl/gl
// parameters plus the derived locale-edition code (ceid).
func BuildURL(q Query) string {
	q = q.WithDefaults()
	ceid := fmt.Sprintf("%s:%s", q.Country, primarySubtag(q.Language))

	if q.SearchQuery != "" {
		return fmt.Sprintf("%s/search?q=%s&hl=%s&gl=%s&ceid=%s",
			Origin, url.QueryEscape(q.SearchQuery), q.Language, q.Country, ceid)
	}

	if q.Category != "" {
		if topic, ok := categoryTopics[strings.ToUpper(q.Category)]; ok {
			return fmt.Sprintf("%s/%s?hl=%s&gl=%s&ceid=%s",
				Origin, topic, q.Language, q.Country, ceid)
		}
	}

	return fmt.Sprintf("%s/home?hl=%s&gl=%s&ceid=%s", Origin, q.Language, q.Country, ceid)
}

// primarySubtag returns the language portion of a locale code ("en-US" → "en").
func primarySubtag(language string) string {
	lang, _, _ := strings.Cut(language, "-")
	return lang
}
