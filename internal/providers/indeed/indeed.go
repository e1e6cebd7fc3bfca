// Package indeed fetches jobs from the Indeed scraper API on RapidAPI.
package indeed

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

// fromageParams maps date_posted to Indeed's "days ago" parameter.
var fromageParams = map[string]string{
	"today": "1",
	"3days": "3",
	"week":  "7",
	"month": "30",
}

// Client calls the Indeed scraper search endpoint.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates an Indeed provider from its config block.
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
	return models.SourceIndeed
}

func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// rawJob is the Indeed-native job shape. Field names vary between API
// revisions, so several carry alternates resolved during normalization.
type rawJob struct {
	ID                string `json:"id"`
	JobKey            string `json:"jobkey"`
	Title             string `json:"title"`
	Company           string `json:"company"`
	CompanyLogo       string `json:"company_logo"`
	Location          string `json:"location"`
	FormattedLocation string `json:"formattedLocation"`
	Country           string `json:"country"`
	Description       string `json:"description"`
	Salary            string `json:"salary"`
	SalaryMin         *int   `json:"salary_min"`
	SalaryMax         *int   `json:"salary_max"`
	JobType           string `json:"job_type"`
	Date              string `json:"date"`
	URL               string `json:"url"`
	Remote            bool   `json:"remote"`
}

type searchResponse struct {
	Jobs    []rawJob `json:"jobs"`
	Results []rawJob `json:"results"`
	Data    []rawJob `json:"data"`
}

func (r *searchResponse) records() []rawJob {
	switch {
	case len(r.Jobs) > 0:
		return r.Jobs
	case len(r.Results) > 0:
		return r.Results
	default:
		return r.Data
	}
}

// Fetch runs one Indeed search and normalizes the results.
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
		params.Set("remoteOnly", "true")
	}
	if req.Filters.DatePosted != "" {
		if mapped, ok := fromageParams[req.Filters.DatePosted]; ok {
			params.Set("fromage", mapped)
		} else {
			params.Set("fromage", "30")
		}
	}
	if len(req.Filters.EmploymentTypes) > 0 {
		params.Set("jt", strings.ToLower(strings.Join(req.Filters.EmploymentTypes, ",")))
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
		return nil, fmt.Errorf("indeed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("indeed returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding indeed response: %w", err)
	}

	records := body.records()
	jobs := make([]models.Job, 0, len(records))
	for _, raw := range records {
		job, ok := normalizeRecord(raw)
		if !ok {
			c.logger.Debug("Dropping unnormalizable indeed record", map[string]interface{}{
				"id": raw.ID,
			})
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// normalizeRecord maps an Indeed record to the canonical Job.
func normalizeRecord(raw rawJob) (models.Job, bool) {
	if strings.TrimSpace(raw.Title) == "" || strings.TrimSpace(raw.Company) == "" {
		return models.Job{}, false
	}

	locationStr := raw.Location
	if locationStr == "" {
		locationStr = raw.FormattedLocation
	}
	city, state, _ := normalize.SplitLocation(locationStr)

	country := models.StringPtr(raw.Country)

	// Structured salary fields win; fall back to parsing the salary snippet
	salaryMin, salaryMax := raw.SalaryMin, raw.SalaryMax
	if salaryMin == nil && raw.Salary != "" {
		salaryMin, salaryMax = normalize.ParseSalaryText(raw.Salary)
	}

	externalID := raw.ID
	if externalID == "" {
		externalID = raw.JobKey
	}

	remote := raw.Remote || normalize.InferRemote(locationStr, raw.Description)

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
			Remote:  remote,
		},
		Employment: models.Employment{
			Type:  models.StringPtr(normalize.InferEmploymentType(raw.JobType, raw.Title, raw.Description)),
			Level: models.StringPtr(normalize.InferSeniority(raw.Title, raw.Description)),
		},
		PostedAt:   normalize.ParsePostedAt(raw.Date),
		Source:     models.SourceIndeed,
		ExternalID: models.StringPtr(externalID),
		ApplyLink:  raw.URL,
		IsActive:   true,
	}, true
}
