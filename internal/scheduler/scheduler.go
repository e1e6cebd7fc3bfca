// Package scheduler re-runs configured searches on a fixed interval so the
// persistence sink stays warm without waiting for user traffic.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
)

// Searcher is the slice of the aggregator the scheduler needs.
type Searcher interface {
	Search(ctx context.Context, req *models.SearchRequest) ([]models.Job, bool)
}

// Scheduler drives periodic background refreshes of the configured searches.
type Scheduler struct {
	cfg      *config.Config
	searcher Searcher
	cron     *cron.Cron
	logger   logging.Logger
}

// New creates a scheduler over the configured search list.
func New(cfg *config.Config, searcher Searcher) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		searcher: searcher,
		cron:     cron.New(),
		logger:   logging.GetGlobalLogger(),
	}
}

// Start registers the refresh job and starts the cron loop. It returns
// immediately; refreshes run on the cron goroutine.
func (s *Scheduler) Start() {
	if len(s.cfg.Scheduler.Searches) == 0 {
		s.logger.Warn("Scheduler enabled but no searches configured")
		return
	}

	s.cron.Schedule(cron.Every(s.cfg.Scheduler.Interval), cron.FuncJob(s.refresh))
	s.cron.Start()

	s.logger.Info("Scheduler started", map[string]interface{}{
		"interval": s.cfg.Scheduler.Interval.String(),
		"searches": len(s.cfg.Scheduler.Searches),
	})
}

// Stop halts the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// refresh runs every configured search once. Caching is bypassed so each
// cycle fetches fresh provider data for the sink; a search that yields
// nothing is only logged.
func (s *Scheduler) refresh() {
	start := time.Now()
	noCache := false

	for _, search := range s.cfg.Scheduler.Searches {
		req := &models.SearchRequest{
			Query:    search.Query,
			Location: search.Location,
			Limit:    search.Limit,
			UseCache: &noCache,
		}

		jobs, _ := s.searcher.Search(context.Background(), req)
		if len(jobs) == 0 {
			s.logger.Warn("Scheduled search returned no jobs", map[string]interface{}{
				"query":    search.Query,
				"location": search.Location,
			})
			continue
		}

		s.logger.Info("Scheduled search refreshed", map[string]interface{}{
			"query":    search.Query,
			"location": search.Location,
			"jobs":     len(jobs),
		})
	}

	s.logger.Info("Refresh cycle complete", map[string]interface{}{
		"duration": time.Since(start).String(),
	})
}
