package models

// SearchRequest is the inbound search payload. It is constructed per call and
// never persisted; its canonical serialization is the cache-key input.
type SearchRequest struct {
	Query    string        `json:"query" validate:"required"`
	Location string        `json:"location,omitempty"`
	Filters  SearchFilters `json:"filters,omitempty"`
	Limit    int           `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Sources  []string      `json:"sources,omitempty"`
	UseCache *bool         `json:"use_cache,omitempty"`
}

// SearchFilters are the named filter options forwarded to providers that
// support them.
type SearchFilters struct {
	Remote          bool     `json:"remote,omitempty"`
	DatePosted      string   `json:"date_posted,omitempty" validate:"omitempty,oneof=today 3days week month"`
	EmploymentTypes []string `json:"employment_types,omitempty"`
	Sort            string   `json:"sort,omitempty" validate:"omitempty,oneof=relevance date salary"`
}

// CacheEnabled reports whether the request opted into caching. Defaults true.
func (r *SearchRequest) CacheEnabled() bool {
	return r.UseCache == nil || *r.UseCache
}

// EffectiveLimit clamps the per-source result limit, defaulting to 20.
func (r *SearchRequest) EffectiveLimit() int {
	if r.Limit <= 0 {
		return 20
	}
	return r.Limit
}
