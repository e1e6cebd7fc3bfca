// Package aggregator orchestrates a job search: cache lookup, concurrent
// provider fan-out, cross-provider dedup and write-through caching.
package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"careergenie-jobs/internal/cache"
	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

// sinkTimeout bounds the asynchronous persistence hand-off so a stuck
// database cannot leak goroutines indefinitely.
const sinkTimeout = 30 * time.Second

// defaultProviderTimeout applies when a provider has no configured timeout.
const defaultProviderTimeout = 30 * time.Second

// Sink receives merged search results for persistence. The hand-off is
// asynchronous and best-effort: sink failures never affect a response.
type Sink interface {
	SaveJobs(ctx context.Context, jobs []models.Job) error
}

// Detailer is implemented by providers that can look a single job up by
// its external ID.
type Detailer interface {
	Details(ctx context.Context, jobID string) (*models.Job, error)
}

// Aggregator fans a search request out to every active provider and merges
// the results into one deduplicated list.
type Aggregator struct {
	cfg       *config.Config
	providers []providers.Provider
	store     cache.Store
	sink      Sink
	logger    logging.Logger
}

// New creates an orchestrator over a priority-ordered provider registry.
// sink may be nil when persistence is disabled.
func New(cfg *config.Config, registry []providers.Provider, store cache.Store, sink Sink) *Aggregator {
	return &Aggregator{
		cfg:       cfg,
		providers: registry,
		store:     store,
		sink:      sink,
		logger:    logging.GetGlobalLogger(),
	}
}

// Search runs one aggregated job search. It never returns an error: provider
// failures are contained and logged, and the worst case is an empty list.
// The second return reports whether the result came from the cache.
func (a *Aggregator) Search(ctx context.Context, req *models.SearchRequest) ([]models.Job, bool) {
	start := time.Now()

	key := CacheKey(a.cfg.Cache.KeyPrefix, req)
	useCache := a.cfg.Cache.Enabled && req.CacheEnabled()

	if useCache {
		if jobs, ok := a.store.Get(ctx, key); ok {
			a.logger.Info("Search served from cache", map[string]interface{}{
				"key":   key,
				"jobs":  len(jobs),
				"query": req.Query,
			})
			return jobs, true
		}
	}

	active := a.activeProviders(req)
	if len(active) == 0 {
		a.logger.Warn("No active providers for search", map[string]interface{}{
			"query":     req.Query,
			"requested": req.Sources,
		})
		return []models.Job{}, false
	}

	// Each task owns its slot, so no mutex is needed around results.
	results := make([][]models.Job, len(active))
	var wg sync.WaitGroup

	for i, p := range active {
		wg.Add(1)
		go func(slot int, p providers.Provider) {
			defer wg.Done()

			pctx, cancel := context.WithTimeout(ctx, a.providerTimeout(p.Name()))
			defer cancel()

			jobs, err := p.Fetch(pctx, req)
			if err != nil {
				a.logger.Error("Provider fetch failed", map[string]interface{}{
					"provider": p.Name(),
					"query":    req.Query,
					"error":    err.Error(),
				})
				return
			}

			a.logger.Debug("Provider fetch complete", map[string]interface{}{
				"provider": p.Name(),
				"jobs":     len(jobs),
			})
			results[slot] = jobs
		}(i, p)
	}
	wg.Wait()

	// Concatenation order is dispatch order, which is priority order, so
	// the dedup first-wins rule favors higher-priority sources.
	var merged []models.Job
	for _, r := range results {
		merged = append(merged, r...)
	}
	total := len(merged)
	merged = Dedupe(merged)
	if merged == nil {
		merged = []models.Job{}
	}

	if useCache && len(merged) > 0 {
		a.store.Set(ctx, key, merged)
	}

	if a.sink != nil && len(merged) > 0 {
		jobs := merged
		go func() {
			sctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			defer cancel()
			if err := a.sink.SaveJobs(sctx, jobs); err != nil {
				a.logger.Error("Persisting search results failed", map[string]interface{}{
					"jobs":  len(jobs),
					"error": err.Error(),
				})
			}
		}()
	}

	a.logger.Info("Search complete", map[string]interface{}{
		"query":      req.Query,
		"providers":  len(active),
		"fetched":    total,
		"jobs":       len(merged),
		"duplicates": total - len(merged),
		"duration":   utils.FormatDuration(time.Since(start)),
	})
	return merged, false
}

// activeProviders resolves the active set: the requested sources (or all of
// them) intersected with the providers that report themselves available, in
// registry priority order.
func (a *Aggregator) activeProviders(req *models.SearchRequest) []providers.Provider {
	var active []providers.Provider
	for _, p := range a.providers {
		if len(req.Sources) > 0 && !utils.Contains(req.Sources, p.Name()) {
			continue
		}
		if !p.Available() {
			// Missing credential: silent exclusion, not an error.
			a.logger.Debug("Provider unavailable, excluded from search", map[string]interface{}{
				"provider": p.Name(),
			})
			continue
		}
		active = append(active, p)
	}
	return active
}

func (a *Aggregator) providerTimeout(name string) time.Duration {
	if pc, ok := a.cfg.ProviderByName(name); ok && pc.Timeout > 0 {
		return pc.Timeout
	}
	return defaultProviderTimeout
}

// JobDetails looks a single job up by its external ID on the named source,
// defaulting to jsearch. Only sources whose provider supports a detail
// lookup are accepted.
func (a *Aggregator) JobDetails(ctx context.Context, source, jobID string) (*models.Job, error) {
	if source == "" {
		source = models.SourceJSearch
	}

	for _, p := range a.providers {
		if p.Name() != source {
			continue
		}
		d, ok := p.(Detailer)
		if !ok {
			break
		}
		if !p.Available() {
			return nil, utils.NewProviderError(fmt.Sprintf("%s is not configured", source))
		}
		return d.Details(ctx, jobID)
	}

	return nil, utils.NewValidationError(fmt.Sprintf("source %s does not support job detail lookup", source))
}

// Sources lists the source tag of every provider that is currently
// available, in priority order.
func (a *Aggregator) Sources() []string {
	sources := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		if p.Available() {
			sources = append(sources, p.Name())
		}
	}
	return sources
}
