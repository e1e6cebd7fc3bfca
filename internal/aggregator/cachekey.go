package aggregator

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"careergenie-jobs/pkg/models"
)

// CacheKey derives the canonical cache key for a search request. The request
// is reduced to a map and serialized with json.Marshal, which emits map keys
// in sorted order, so logically equal requests produce byte-identical
// serializations and therefore the same key. Query and location are
// case-folded; list-valued fields are sorted.
func CacheKey(prefix string, req *models.SearchRequest) string {
	canonical := map[string]interface{}{
		"query":    strings.ToLower(strings.TrimSpace(req.Query)),
		"location": strings.ToLower(strings.TrimSpace(req.Location)),
		"limit":    req.EffectiveLimit(),
		"remote":   req.Filters.Remote,
		"date":     req.Filters.DatePosted,
		"types":    sortedLower(req.Filters.EmploymentTypes),
		"sort":     req.Filters.Sort,
		"sources":  sortedLower(req.Sources),
	}

	data, _ := json.Marshal(canonical)
	sum := md5.Sum(data)
	return prefix + hex.EncodeToString(sum[:])
}

func sortedLower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	sort.Strings(out)
	return out
}
