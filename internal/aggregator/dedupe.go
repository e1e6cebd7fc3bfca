package aggregator

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"careergenie-jobs/pkg/models"
)

// Signature computes the cross-provider identity of a job: an md5 over the
// lowercase-trimmed title, company name, city and state. Two listings with
// the same signature are the same position regardless of which board they
// came from. Accent variants ("Zurich" vs "Zürich") hash differently; that
// is an accepted limitation.
func Signature(job *models.Job) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(job.Title)),
		strings.ToLower(strings.TrimSpace(job.Company.Name)),
		normalizePart(job.Location.City),
		normalizePart(job.Location.State),
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func normalizePart(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

// Dedupe removes cross-provider duplicates, keeping the first occurrence of
// each signature. Input order is preserved, so with priority-ordered input
// the higher-priority source wins every tie.
func Dedupe(jobs []models.Job) []models.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]models.Job, 0, len(jobs))

	for i := range jobs {
		sig := Signature(&jobs[i])
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, jobs[i])
	}

	return out
}
