package models

import "time"

// SearchResponse is the response for a job search request.
type SearchResponse struct {
	Success        bool     `json:"success"`
	Jobs           []Job    `json:"jobs"`
	Total          int      `json:"total"`
	Cached         bool     `json:"cached"`
	Sources        []string `json:"sources"`
	ProcessingTime string   `json:"processing_time"`
	RequestID      string   `json:"request_id"`
}

// JobDetailsResponse is the response for a single-job lookup.
type JobDetailsResponse struct {
	Success   bool   `json:"success"`
	Job       *Job   `json:"job"`
	RequestID string `json:"request_id"`
}

// SourcesResponse lists the providers available for searching.
type SourcesResponse struct {
	Sources []string `json:"sources"`
	Total   int      `json:"total"`
}

// CacheStatsResponse reports cache usage for the admin endpoint.
type CacheStatsResponse struct {
	Enabled        bool    `json:"enabled"`
	TotalKeys      int     `json:"total_keys,omitempty"`
	TotalSizeBytes int64   `json:"total_size_bytes,omitempty"`
	TotalSizeMB    float64 `json:"total_size_mb,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// CacheClearResponse reports the outcome of an administrative cache clear.
type CacheClearResponse struct {
	Success     bool `json:"success"`
	KeysCleared int  `json:"keys_cleared"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
