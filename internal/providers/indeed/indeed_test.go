package indeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/pkg/models"
)

func intPtr(i int) *int { return &i }

func TestAvailable(t *testing.T) {
	cfg := config.ProviderConfig{APIKey: "k", Host: "indeed12.p.rapidapi.com", Timeout: time.Second}
	assert.True(t, New(cfg).Available())

	cfg.APIKey = ""
	assert.False(t, New(cfg).Available())
}

func TestNormalizeRecordPrefersStructuredSalary(t *testing.T) {
	job, ok := normalizeRecord(rawJob{
		ID:        "in-1",
		Title:     "Platform Engineer",
		Company:   "Umbrella",
		Location:  "Seattle, WA",
		Salary:    "$50,000 a year", // ignored when structured fields exist
		SalaryMin: intPtr(120000),
		SalaryMax: intPtr(150000),
	})
	require.True(t, ok)

	require.NotNil(t, job.Salary.Min)
	assert.Equal(t, 120000, *job.Salary.Min)
	require.NotNil(t, job.Salary.Max)
	assert.Equal(t, 150000, *job.Salary.Max)
}

func TestNormalizeRecordFallsBackToSalaryText(t *testing.T) {
	job, ok := normalizeRecord(rawJob{
		ID:      "in-2",
		Title:   "Analyst",
		Company: "Umbrella",
		Salary:  "$60,000 - $75,000 a year",
	})
	require.True(t, ok)

	require.NotNil(t, job.Salary.Min)
	assert.Equal(t, 60000, *job.Salary.Min)
	require.NotNil(t, job.Salary.Max)
	assert.Equal(t, 75000, *job.Salary.Max)
}

func TestNormalizeRecordExternalIDFallsBackToJobKey(t *testing.T) {
	job, ok := normalizeRecord(rawJob{
		JobKey:  "key-9",
		Title:   "Tester",
		Company: "Umbrella",
	})
	require.True(t, ok)

	require.NotNil(t, job.ExternalID)
	assert.Equal(t, "key-9", *job.ExternalID)
	assert.Equal(t, models.SourceIndeed, job.Source)
}

func TestNormalizeRecordDiscardsIncomplete(t *testing.T) {
	_, ok := normalizeRecord(rawJob{Title: "No Company"})
	assert.False(t, ok)
}

func TestSearchResponseRecords(t *testing.T) {
	r := searchResponse{Results: []rawJob{{ID: "a"}}}
	assert.Len(t, r.records(), 1)

	r = searchResponse{Jobs: []rawJob{{ID: "a"}}, Data: []rawJob{{ID: "b"}, {ID: "c"}}}
	assert.Equal(t, "a", r.records()[0].ID)
}
