// Package linkedin fetches jobs from the LinkedIn Job Search API on RapidAPI.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers/normalize"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

const maxResults = 50

// datePostedParams maps the canonical date_posted filter to LinkedIn's values.
var datePostedParams = map[string]string{
	"today": "past-24-hours",
	"3days": "past-week",
	"week":  "past-week",
	"month": "past-month",
}

// Client calls the LinkedIn job search endpoint.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates a LinkedIn provider from its config block.
func New(cfg config.ProviderConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logging.GetGlobalLogger(),
	}
}

func (c *Client) Name() string {
	return models.SourceLinkedIn
}

func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// rawJob is the LinkedIn-native job shape.
type rawJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyLogo string `json:"company_logo"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	PostedDate  string `json:"posted_date"`
	URL         string `json:"url"`
	Type        string `json:"type"`
}

type searchResponse struct {
	Jobs []rawJob `json:"jobs"`
	Data []rawJob `json:"data"`
}

// records returns whichever field the API populated.
func (r *searchResponse) records() []rawJob {
	if len(r.Jobs) > 0 {
		return r.Jobs
	}
	return r.Data
}

// Fetch runs one LinkedIn search and normalizes the results.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	limit := req.EffectiveLimit()
	if limit > maxResults {
		limit = maxResults
	}

	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("limit", strconv.Itoa(limit))
	if req.Location != "" {
		params.Set("location", req.Location)
	}
	if req.Filters.Remote {
		params.Set("remoteFilter", "remote")
	}
	if req.Filters.DatePosted != "" {
		if mapped, ok := datePostedParams[req.Filters.DatePosted]; ok {
			params.Set("datePosted", mapped)
		} else {
			params.Set("datePosted", "any-time")
		}
	}

	endpoint := fmt.Sprintf("https://%s/search?%s", c.cfg.Host, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	httpReq.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("linkedin returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding linkedin response: %w", err)
	}

	records := body.records()
	jobs := make([]models.Job, 0, len(records))
	for _, raw := range records {
		job, ok := normalizeRecord(raw)
		if !ok {
			c.logger.Debug("Dropping unnormalizable linkedin record", map[string]interface{}{
				"id": raw.ID,
			})
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// normalizeRecord maps a LinkedIn record to the canonical Job.
func normalizeRecord(raw rawJob) (models.Job, bool) {
	if strings.TrimSpace(raw.Title) == "" || strings.TrimSpace(raw.Company) == "" {
		return models.Job{}, false
	}

	salaryMin, salaryMax := normalize.ParseSalaryText(raw.Salary)
	city, state, country := normalize.SplitLocation(raw.Location)

	return models.Job{
		Title: raw.Title,
		Company: models.Company{
			Name: raw.Company,
			Logo: models.StringPtr(raw.CompanyLogo),
		},
		Description: raw.Description,
		Salary: models.Salary{
			Min:      salaryMin,
			Max:      salaryMax,
			Currency: "USD",
			Period:   models.PeriodYear,
		},
		Location: models.Location{
			City:    city,
			State:   state,
			Country: country,
			Remote:  normalize.InferRemote(raw.Location, raw.Description),
		},
		Employment: models.Employment{
			Type:  models.StringPtr(normalize.InferEmploymentType(raw.Type, raw.Title, raw.Description)),
			Level: models.StringPtr(normalize.InferSeniority(raw.Title, raw.Description)),
		},
		PostedAt:   normalize.ParsePostedAt(raw.PostedDate),
		Source:     models.SourceLinkedIn,
		ExternalID: models.StringPtr(raw.ID),
		ApplyLink:  raw.URL,
		IsActive:   true,
	}, true
}
