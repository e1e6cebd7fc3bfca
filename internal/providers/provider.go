package providers

import (
	"context"

	"careergenie-jobs/pkg/models"
)

// Provider is the capability every job source implements: a single-round-trip
// fetch that returns normalized canonical jobs.
type Provider interface {
	// Name returns the source tag stamped on every job this provider emits.
	Name() string

	// Available reports whether the provider is usable for this process.
	// A missing credential makes a provider unavailable; that is a silent
	// exclusion from the active set, not an error.
	Available() bool

	// Fetch performs one network round trip against the provider and
	// normalizes its response. There are no retries: any failure is final
	// for this search and surfaces as an error the orchestrator logs and
	// converts to zero results.
	Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error)
}
