package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/news"
)

var (
	newsCategory string
	newsQuery    string
	newsLanguage string
	newsCountry  string
	newsMax      int
	newsList     bool
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch news once and print the results (no LLM)",
	RunE:  runNews,
}

func init() {
	newsCmd.Flags().StringVar(&newsCategory, "category", "", "News category (TECHNOLOGY, SPORTS, ...)")
	newsCmd.Flags().StringVarP(&newsQuery, "query", "q", "", "Free-text search; takes precedence over --category")
	newsCmd.Flags().StringVar(&newsLanguage, "lang", "", "Language code, e.g. en-US")
	newsCmd.Flags().StringVar(&newsCountry, "country", "", "Country code, e.g. US")
	newsCmd.Flags().IntVarP(&newsMax, "max", "n", 0, "Maximum number of articles")
	newsCmd.Flags().BoolVar(&newsList, "list", false, "List supported categories and languages")
}

func runNews(cmd *cobra.Command, _ []string) error {
	if newsList {
		printCatalogs()
		return nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := news.NewService(news.NewHTTPBrowser(), cfg.Scraper, nil)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	articles, err := svc.Retrieve(ctx, news.Query{
		Language:    firstNonEmpty(newsLanguage, cfg.Scraper.Language),
		Country:     firstNonEmpty(newsCountry, cfg.Scraper.Country),
		MaxArticles: newsMax,
		Category:    newsCategory,
		SearchQuery: newsQuery,
	})
	if err != nil {
		return err
	}

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	for i, a := range articles {
		fmt.Printf("%2d. %s\n", i+1, a.Title)
		meta := a.Source
		if a.PublishedTime != nil {
			meta = strings.TrimSpace(meta + " — " + *a.PublishedTime)
		}
		if meta != "" {
			fmt.Printf("    %s\n", meta)
		}
		if a.Description != "" {
			fmt.Printf("    %s\n", a.Description)
		}
		if a.Link != "" {
			fmt.Printf("    %s\n", a.Link)
		}
	}
	return nil
}

func printCatalogs() {
	fmt.Println("Categories:", strings.Join(news.AvailableCategories(), ", "))

	langs := news.AvailableLanguages()
	codes := make([]string, 0, len(langs))
	for code := range langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	fmt.Println("Languages: ", strings.Join(codes, ", "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
