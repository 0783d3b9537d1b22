package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// AgentConfig holds LLM parameters for the dialogue loop.
type AgentConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// ScraperConfig holds the news-retrieval parameters.
//
// GraceDelay is how long to wait before extracting anyway when none of the
// readiness selectors appeared within ReadinessTimeout.
type ScraperConfig struct {
	Language          string   `yaml:"language"`
	Country           string   `yaml:"country"`
	MaxArticles       int      `yaml:"max_articles"`
	MaxArticlesCap    int      `yaml:"max_articles_cap"`
	NavigationTimeout Duration `yaml:"navigation_timeout"`
	ReadinessTimeout  Duration `yaml:"readiness_timeout"`
	GraceDelay        Duration `yaml:"grace_delay"`
}

// DigestConfig is one scheduled news digest.
type DigestConfig struct {
	Name        string `yaml:"name"`
	Schedule    string `yaml:"schedule"` // standard 5-field cron expression
	Category    string `yaml:"category,omitempty"`
	SearchQuery string `yaml:"search_query,omitempty"`
	Language    string `yaml:"language,omitempty"`
	Country     string `yaml:"country,omitempty"`
	MaxArticles int    `yaml:"max_articles,omitempty"`
}

// ReaderConfig holds parameters for the read_article tool.
type ReaderConfig struct {
	MaxChars int `yaml:"max_chars"`
}

// Config is the root newshound configuration.
type Config struct {
	Agent   AgentConfig    `yaml:"agent"`
	Scraper ScraperConfig  `yaml:"scraper"`
	Reader  ReaderConfig   `yaml:"reader"`
	Digests []DigestConfig `yaml:"digests,omitempty"`
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Agent: AgentConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Scraper: ScraperConfig{
			Language:          "en-US",
			Country:           "US",
			MaxArticles:       10,
			MaxArticlesCap:    50,
			NavigationTimeout: Duration(30 * time.Second),
			ReadinessTimeout:  Duration(15 * time.Second),
			GraceDelay:        Duration(3 * time.Second),
		},
		Reader: ReaderConfig{
			MaxChars: 50000,
		},
	}
}
