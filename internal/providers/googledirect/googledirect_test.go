package googledirect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/pkg/models"
)

const jobsPanelHTML = `<html><body>
<div class="PwjeAc" data-job-id="g-1">
  <div class="BjJfJf">Senior Go Developer</div>
  <div class="vNEEBe">Hooli</div>
  <div class="Qk80Jf">Austin, TX, USA</div>
  <span class="HBvzbc">Distributed systems, remote friendly</span>
  <a href="/search?jobid=g-1">View job</a>
</div>
<div class="PwjeAc">
  <div class="BjJfJf">Card Without Company</div>
</div>
</body></html>`

func testConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		Enabled: true,
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

func TestAvailableNeedsNoCredential(t *testing.T) {
	assert.True(t, New(testConfig("http://example.invalid")).Available())
}

func TestFetchParsesJobsPanel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "htl;jobs", r.URL.Query().Get("ibp"))
		assert.Contains(t, r.URL.Query().Get("q"), "jobs")
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(jobsPanelHTML))
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	jobs, err := c.Fetch(context.Background(), &models.SearchRequest{
		Query:    "Go Developer",
		Location: "Austin, TX",
		Limit:    20,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Senior Go Developer", job.Title)
	assert.Equal(t, "Hooli", job.Company.Name)
	assert.Equal(t, models.SourceGoogleDirect, job.Source)
	require.NotNil(t, job.ExternalID)
	assert.Equal(t, "g-1", *job.ExternalID)
	require.NotNil(t, job.Location.City)
	assert.Equal(t, "Austin", *job.Location.City)
	require.NotNil(t, job.Employment.Level)
	assert.Equal(t, "Senior", *job.Employment.Level)
	assert.True(t, job.Location.Remote)
	assert.Equal(t, "https://www.google.com/search?jobid=g-1", job.ApplyLink)
}

func TestFetchHonorsLimit(t *testing.T) {
	page := `<html><body>`
	for i := 0; i < 5; i++ {
		page += `<div class="PwjeAc"><div class="BjJfJf">Role</div><div class="vNEEBe">Co</div></div>`
	}
	page += `</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	jobs, err := c.Fetch(context.Background(), &models.SearchRequest{Query: "x", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
}

func TestFetchSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	_, err := c.Fetch(context.Background(), &models.SearchRequest{Query: "x"})
	assert.Error(t, err)
}
