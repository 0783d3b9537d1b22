package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/newshound/newshound/internal/news"
	"github.com/newshound/newshound/internal/shared/llmutils"
)

// FetchNewsResult is the JSON payload returned to the model. Success and
// Error are mutually exclusive; Parameters always echoes the effective
// (defaulted) query so the model can see what was actually fetched.
type FetchNewsResult struct {
	Success       bool             `json:"success"`
	TotalArticles int              `json:"totalArticles"`
	Parameters    FetchNewsParams  `json:"parameters"`
	Articles      []NumberedResult `json:"articles"`
	Error         string           `json:"error,omitempty"`
}

type FetchNewsParams struct {
	Language    string `json:"language"`
	Country     string `json:"country"`
	MaxArticles int    `json:"maxArticles"`
	Category    string `json:"category"`
	SearchQuery string `json:"searchQuery"`
}

// NumberedResult is an Article with its 1-based position in the batch.
type NumberedResult struct {
	ID int `json:"id"`
	news.Article
}

// FetchTopNewsTool exposes the news retrieval service to the model.
type FetchTopNewsTool struct {
	retriever news.Retriever
	maxCap    int
	log       *slog.Logger
}

// NewFetchTopNewsTool creates the tool. maxCap bounds maxArticles regardless
// of what the model asks for; values <= 0 fall back to 50.
func NewFetchTopNewsTool(retriever news.Retriever, maxCap int, log *slog.Logger) *FetchTopNewsTool {
	if maxCap <= 0 {
		maxCap = 50
	}
	if log == nil {
		log = slog.Default()
	}
	return &FetchTopNewsTool{retriever: retriever, maxCap: maxCap, log: log}
}

func (t *FetchTopNewsTool) Name() string { return string(ToolFetchTopNews) }

func (t *FetchTopNewsTool) Description() string {
	return "Fetch the latest news from Google News with customizable parameters"
}

func (t *FetchTopNewsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"language": {
				"type": "string",
				"description": "Language code (e.g., \"en-US\", \"es-ES\", \"fr-FR\"). Default: \"en-US\""
			},
			"country": {
				"type": "string",
				"description": "Country code (e.g., \"US\", \"ES\", \"FR\"). Default: \"US\""
			},
			"maxArticles": {
				"type": "number",
				"description": "Maximum number of articles to return. Default: 10"
			},
			"category": {
				"type": "string",
				"description": "News category: \"TECHNOLOGY\", \"SPORTS\", \"HEALTH\", \"BUSINESS\", \"ENTERTAINMENT\", \"SCIENCE\", \"WORLD\""
			},
			"searchQuery": {
				"type": "string",
				"description": "Search for specific topics (e.g., \"artificial intelligence\", \"climate change\")"
			}
		},
		"required": []
	}`)
}

// Execute runs one retrieval. Expected failures (malformed arguments,
// retrieval errors) are reported inside the JSON result, never as a Go
// error, so the dialogue loop always gets a well-formed tool message.
func (t *FetchTopNewsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	query, err := parseQuery(params)
	if err != nil {
		return marshalResult(failureResult(query, err)), nil
	}
	if query.MaxArticles > t.maxCap {
		t.log.Warn("Capping maxArticles", "requested", query.MaxArticles, "cap", t.maxCap)
		query.MaxArticles = t.maxCap
	}

	articles, err := t.retriever.Retrieve(ctx, query)
	if err != nil {
		t.log.Error("fetch_top_news failed", "err", err)
		return marshalResult(failureResult(query, err)), nil
	}

	numbered := make([]NumberedResult, 0, len(articles))
	for i, a := range articles {
		numbered = append(numbered, NumberedResult{ID: i + 1, Article: a})
	}

	return marshalResult(FetchNewsResult{
		Success:       true,
		TotalArticles: len(numbered),
		Parameters:    echoParams(query),
		Articles:      numbered,
	}), nil
}

// parseQuery decodes the model-supplied argument map, applying defaults.
// A wrongly typed field is an invalid-argument failure; an unrecognized
// category is not (the query builder ignores it).
func parseQuery(params map[string]any) (news.Query, error) {
	q := news.Query{}

	var err error
	if q.Language, err = stringArg(params, "language"); err != nil {
		return q.WithDefaults(), err
	}
	if q.Country, err = stringArg(params, "country"); err != nil {
		return q.WithDefaults(), err
	}
	if q.Category, err = stringArg(params, "category"); err != nil {
		return q.WithDefaults(), err
	}
	if q.SearchQuery, err = stringArg(params, "searchQuery"); err != nil {
		return q.WithDefaults(), err
	}

	if raw, ok := params["maxArticles"]; ok && raw != nil {
		switch v := raw.(type) {
		case float64:
			q.MaxArticles = int(v)
		case int:
			q.MaxArticles = v
		default:
			return q.WithDefaults(), fmt.Errorf("invalid argument: maxArticles must be a number, got %T", raw)
		}
	}

	return q.WithDefaults(), nil
}

func stringArg(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid argument: %s must be a string, got %T", key, raw)
	}
	return s, nil
}

func echoParams(q news.Query) FetchNewsParams {
	return FetchNewsParams{
		Language:    q.Language,
		Country:     q.Country,
		MaxArticles: q.MaxArticles,
		Category:    llmutils.StringOrDefault(q.Category, "general"),
		SearchQuery: llmutils.StringOrDefault(q.SearchQuery, "none"),
	}
}

func failureResult(q news.Query, err error) FetchNewsResult {
	return FetchNewsResult{
		Success:    false,
		Parameters: echoParams(q),
		Articles:   []NumberedResult{},
		Error:      err.Error(),
	}
}

func marshalResult(res FetchNewsResult) string {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, err.Error())
	}
	return string(out)
}
