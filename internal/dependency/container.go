// Package dependency wires core newshound services using go.uber.org/dig.
package dependency

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/dig"

	"github.com/newshound/newshound/internal/agent"
	"github.com/newshound/newshound/internal/config"
	"github.com/newshound/newshound/internal/digest"
	"github.com/newshound/newshound/internal/news"
	"github.com/newshound/newshound/internal/providers"
	"github.com/newshound/newshound/internal/schema"
	"github.com/newshound/newshound/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider schema.LLMProvider
	newsSvc  *news.Service
	registry *tools.Registry
	loop     *agent.DialogueLoop
	digests  *digest.Service
}

func (c *Container) Provider() schema.LLMProvider      { return c.provider }
func (c *Container) NewsService() *news.Service        { return c.newsSvc }
func (c *Container) Registry() *tools.Registry         { return c.registry }
func (c *Container) DialogueLoop() *agent.DialogueLoop { return c.loop }
func (c *Container) DigestService() *digest.Service    { return c.digests }

// New builds and wires all core services from cfg.
func New(cfg *config.Config, log *slog.Logger) (*Container, error) {
	if log == nil {
		log = slog.Default()
	}

	d := dig.New()

	constructors := []any{
		func() *config.Config { return cfg },
		func() *slog.Logger { return log },
		newBrowser,
		newNewsService,
		newRegistry,
		newProvider,
		newSettings,
		newDialogueLoop,
		newDigestService,
	}
	for _, c := range constructors {
		if err := d.Provide(c); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		newsSvc *news.Service,
		registry *tools.Registry,
		loop *agent.DialogueLoop,
		digests *digest.Service,
	) {
		result = &Container{
			provider: provider,
			newsSvc:  newsSvc,
			registry: registry,
			loop:     loop,
			digests:  digests,
		}
	})
	return result, err
}

func newBrowser() news.Browser {
	return news.NewHTTPBrowser()
}

func newNewsService(cfg *config.Config, browser news.Browser, log *slog.Logger) *news.Service {
	return news.NewService(browser, cfg.Scraper, log)
}

func newRegistry(cfg *config.Config, svc *news.Service, log *slog.Logger) *tools.Registry {
	return tools.NewRegistry(
		tools.NewFetchTopNewsTool(svc, cfg.Scraper.MaxArticlesCap, log),
		tools.NewReadArticleTool(cfg.Reader.MaxChars),
	)
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set: export it or add it to .env")
	}

	model := cfg.Agent.Model
	if override := os.Getenv("NEWSHOUND_MODEL"); override != "" {
		model = override
	}

	return providers.NewOpenAIProvider(apiKey, os.Getenv("OPENAI_API_BASE"), model), nil
}

func newSettings(cfg *config.Config, provider schema.LLMProvider) schema.AgentSettings {
	return schema.NewAgentSettings(provider.DefaultModel(), cfg.Agent.Temperature, cfg.Agent.MaxTokens)
}

func newDialogueLoop(
	provider schema.LLMProvider,
	registry *tools.Registry,
	settings schema.AgentSettings,
	log *slog.Logger,
) *agent.DialogueLoop {
	input := agent.NewScannerInput(os.Stdin, os.Stdout)
	return agent.NewDialogueLoop(provider, registry, input, os.Stdout, settings, log)
}

func newDigestService(cfg *config.Config, svc *news.Service, log *slog.Logger) *digest.Service {
	return digest.NewService(svc, cfg.Digests, os.Stdout, log)
}
