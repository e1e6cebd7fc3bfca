package aggregator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"careergenie-jobs/pkg/models"
)

func TestCacheKeyStableAcrossEquivalentRequests(t *testing.T) {
	a := &models.SearchRequest{
		Query:    "Data Engineer",
		Location: "Nairobi, Kenya",
		Filters: models.SearchFilters{
			Remote:          true,
			EmploymentTypes: []string{"full-time", "contract"},
		},
		Sources: []string{"serpapi", "jsearch"},
	}
	b := &models.SearchRequest{
		Query:    "  data engineer ",
		Location: "NAIROBI, KENYA",
		Filters: models.SearchFilters{
			Remote:          true,
			EmploymentTypes: []string{"contract", "full-time"}, // reordered
		},
		Sources: []string{"jsearch", "serpapi"}, // reordered
	}

	assert.Equal(t, CacheKey("jobs:", a), CacheKey("jobs:", b))
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	base := &models.SearchRequest{Query: "Data Engineer", Location: "Nairobi"}

	differentQuery := &models.SearchRequest{Query: "ML Engineer", Location: "Nairobi"}
	assert.NotEqual(t, CacheKey("jobs:", base), CacheKey("jobs:", differentQuery))

	differentLimit := &models.SearchRequest{Query: "Data Engineer", Location: "Nairobi", Limit: 50}
	assert.NotEqual(t, CacheKey("jobs:", base), CacheKey("jobs:", differentLimit))

	differentFilters := &models.SearchRequest{
		Query:    "Data Engineer",
		Location: "Nairobi",
		Filters:  models.SearchFilters{DatePosted: "week"},
	}
	assert.NotEqual(t, CacheKey("jobs:", base), CacheKey("jobs:", differentFilters))
}

func TestCacheKeyCarriesPrefix(t *testing.T) {
	req := &models.SearchRequest{Query: "x"}
	key := CacheKey("jobs:", req)

	assert.True(t, strings.HasPrefix(key, "jobs:"))
	// md5 hex digest after the prefix
	assert.Len(t, strings.TrimPrefix(key, "jobs:"), 32)
}
