package linkedin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/pkg/models"
)

func TestAvailable(t *testing.T) {
	cfg := config.ProviderConfig{APIKey: "k", Host: "linkedin-job-search.p.rapidapi.com", Timeout: time.Second}
	assert.True(t, New(cfg).Available())

	cfg.APIKey = ""
	assert.False(t, New(cfg).Available())
}

func TestNormalizeRecord(t *testing.T) {
	job, ok := normalizeRecord(rawJob{
		ID:          "li-1",
		Title:       "Engineering Manager",
		Company:     "Stark Industries",
		CompanyLogo: "https://stark.example/logo.png",
		Location:    "New York, NY, USA",
		Description: "Lead a platform team",
		Salary:      "$180,000 - $220,000",
		PostedDate:  "2025-10-15",
		URL:         "https://linkedin.example/jobs/li-1",
		Type:        "Full-time",
	})
	require.True(t, ok)

	assert.Equal(t, "Engineering Manager", job.Title)
	assert.Equal(t, models.SourceLinkedIn, job.Source)
	require.NotNil(t, job.ExternalID)
	assert.Equal(t, "li-1", *job.ExternalID)
	require.NotNil(t, job.Salary.Min)
	assert.Equal(t, 180000, *job.Salary.Min)
	require.NotNil(t, job.Location.City)
	assert.Equal(t, "New York", *job.Location.City)
	require.NotNil(t, job.Location.Country)
	assert.Equal(t, "USA", *job.Location.Country)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), job.PostedAt)
	assert.False(t, job.Location.Remote)
}

func TestNormalizeRecordDiscardsIncomplete(t *testing.T) {
	_, ok := normalizeRecord(rawJob{Title: "No Company"})
	assert.False(t, ok)

	_, ok = normalizeRecord(rawJob{Company: "No Title"})
	assert.False(t, ok)
}

func TestSearchResponseRecords(t *testing.T) {
	r := searchResponse{Data: []rawJob{{ID: "d"}}}
	assert.Equal(t, "d", r.records()[0].ID)

	r = searchResponse{Jobs: []rawJob{{ID: "j"}}, Data: []rawJob{{ID: "d"}}}
	assert.Equal(t, "j", r.records()[0].ID)
}
