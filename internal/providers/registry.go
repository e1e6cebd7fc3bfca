package providers

import (
	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers/careerjet"
	"careergenie-jobs/internal/providers/googledirect"
	"careergenie-jobs/internal/providers/indeed"
	"careergenie-jobs/internal/providers/jsearch"
	"careergenie-jobs/internal/providers/linkedin"
	"careergenie-jobs/internal/providers/serpapi"
)

// BuildRegistry constructs every enabled provider in configured priority
// order. The order matters: it fixes dispatch order and therefore which
// source wins the dedup first-seen tie-break, so higher-fidelity official
// APIs come before free scrape fallbacks.
func BuildRegistry(cfg *config.Config) []Provider {
	logger := logging.GetGlobalLogger()

	constructors := map[string]func(config.ProviderConfig) Provider{
		"serpapi":       func(pc config.ProviderConfig) Provider { return serpapi.New(pc) },
		"google_direct": func(pc config.ProviderConfig) Provider { return googledirect.New(pc) },
		"jsearch":       func(pc config.ProviderConfig) Provider { return jsearch.New(pc) },
		"careerjet":     func(pc config.ProviderConfig) Provider { return careerjet.New(pc) },
		"linkedin":      func(pc config.ProviderConfig) Provider { return linkedin.New(pc) },
		"indeed":        func(pc config.ProviderConfig) Provider { return indeed.New(pc) },
	}

	var registry []Provider
	for _, name := range cfg.Providers.Priority {
		construct, ok := constructors[name]
		if !ok {
			logger.Warn("Unknown provider in priority list, skipping", map[string]interface{}{
				"provider": name,
			})
			continue
		}

		pc, _ := cfg.ProviderByName(name)
		if !pc.Enabled {
			continue
		}

		registry = append(registry, construct(pc))
	}

	logger.Info("Provider registry built", map[string]interface{}{
		"providers": len(registry),
	})
	return registry
}
