package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/pkg/models"
)

func TestDedupKeyPrefersExternalID(t *testing.T) {
	job := models.Job{
		Title:      "Data Engineer",
		Company:    models.Company{Name: "Acme"},
		Source:     models.SourceJSearch,
		ExternalID: models.StringPtr("jid-42"),
	}

	assert.Equal(t, "jid-42", dedupKey(&job))
}

func TestDedupKeyFallsBackToSignature(t *testing.T) {
	job := models.Job{
		Title:   "Data Engineer",
		Company: models.Company{Name: "Acme"},
		Source:  models.SourceCareerjet,
	}

	assert.Equal(t, aggregator.Signature(&job), dedupKey(&job))
}
