package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-jobs/pkg/models"
)

func job(title, company, city, state, source string) models.Job {
	return models.Job{
		Title:    title,
		Company:  models.Company{Name: company},
		Location: models.Location{City: models.StringPtr(city), State: models.StringPtr(state)},
		Source:   source,
	}
}

func TestSignatureIgnoresCaseAndWhitespace(t *testing.T) {
	a := job("Data Engineer", "Acme", "Nairobi", "Nairobi County", models.SourceSerpAPI)
	b := job("  data engineer ", "ACME", "nairobi ", " NAIROBI COUNTY", models.SourceJSearch)

	assert.Equal(t, Signature(&a), Signature(&b))
}

func TestSignatureDistinguishesLocation(t *testing.T) {
	a := job("Data Engineer", "Acme", "Nairobi", "", models.SourceSerpAPI)
	b := job("Data Engineer", "Acme", "Mombasa", "", models.SourceSerpAPI)

	assert.NotEqual(t, Signature(&a), Signature(&b))
}

func TestSignatureTreatsNilPartsAsEmpty(t *testing.T) {
	a := models.Job{Title: "Dev", Company: models.Company{Name: "Acme"}}
	b := job("Dev", "Acme", "", "", models.SourceIndeed)

	assert.Equal(t, Signature(&a), Signature(&b))
}

func TestDedupeFirstWins(t *testing.T) {
	jobs := []models.Job{
		job("Data Engineer", "Safaricom", "Nairobi", "", models.SourceSerpAPI),
		job("Backend Developer", "Twiga", "Nairobi", "", models.SourceSerpAPI),
		// same position surfaced by a lower-priority source
		job("Data Engineer", "Safaricom", "Nairobi", "", models.SourceJSearch),
	}

	out := Dedupe(jobs)
	require.Len(t, out, 2)
	assert.Equal(t, models.SourceSerpAPI, out[0].Source)
	assert.Equal(t, "Backend Developer", out[1].Title)
}

func TestDedupeIdempotent(t *testing.T) {
	jobs := []models.Job{
		job("A", "X", "C1", "", models.SourceSerpAPI),
		job("B", "Y", "C2", "", models.SourceIndeed),
		job("A", "X", "C1", "", models.SourceLinkedIn),
	}

	once := Dedupe(jobs)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupeEmptyInput(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]models.Job{}))
}
