// Package jsearch fetches jobs from the JSearch API on RapidAPI, a Google
// for Jobs aggregator with well-structured responses.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers/normalize"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

// Client calls the JSearch search endpoint.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates a JSearch provider from its config block.
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
	return models.SourceJSearch
}

func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// rawJob is the JSearch-native job shape.
type rawJob struct {
	JobID                  string   `json:"job_id"`
	JobTitle               string   `json:"job_title"`
	EmployerName           string   `json:"employer_name"`
	EmployerLogo           string   `json:"employer_logo"`
	EmployerWebsite        string   `json:"employer_website"`
	JobDescription         string   `json:"job_description"`
	JobEmploymentType      string   `json:"job_employment_type"`
	JobApplyLink           string   `json:"job_apply_link"`
	JobCity                string   `json:"job_city"`
	JobState               string   `json:"job_state"`
	JobCountry             string   `json:"job_country"`
	JobIsRemote            bool     `json:"job_is_remote"`
	JobLatitude            *float64 `json:"job_latitude"`
	JobLongitude           *float64 `json:"job_longitude"`
	JobMinSalary           *int     `json:"job_min_salary"`
	JobMaxSalary           *int     `json:"job_max_salary"`
	JobSalaryCurrency      string   `json:"job_salary_currency"`
	JobSalaryPeriod        string   `json:"job_salary_period"`
	JobPostedAtDatetimeUTC string   `json:"job_posted_at_datetime_utc"`
}

type searchResponse struct {
	Data []rawJob `json:"data"`
}

// Fetch runs one JSearch query and normalizes the results.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	query := req.Query
	if req.Location != "" {
		query += " in " + req.Location
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	if req.Filters.Remote {
		params.Set("remote_jobs_only", "true")
	}
	if req.Filters.DatePosted != "" {
		params.Set("date_posted", req.Filters.DatePosted)
	}
	if len(req.Filters.EmploymentTypes) > 0 {
		params.Set("employment_types", strings.Join(req.Filters.EmploymentTypes, ","))
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
		return nil, fmt.Errorf("jsearch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("jsearch returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding jsearch response: %w", err)
	}

	jobs := make([]models.Job, 0, len(body.Data))
	for _, raw := range body.Data {
		job, ok := normalizeRecord(raw)
		if !ok {
			c.logger.Debug("Dropping unnormalizable jsearch record", map[string]interface{}{
				"job_id": raw.JobID,
			})
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Details looks a single job up by its JSearch ID on the job-details
// endpoint and normalizes it. A job the API does not know yields a
// not-found error.
func (c *Client) Details(ctx context.Context, jobID string) (*models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("job_id", jobID)

	endpoint := fmt.Sprintf("https://%s/job-details?%s", c.cfg.Host, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	httpReq.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("jsearch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("jsearch returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding jsearch response: %w", err)
	}

	return detailFromResponse(jobID, body)
}

// detailFromResponse picks the first normalizable record out of a
// job-details response.
func detailFromResponse(jobID string, body searchResponse) (*models.Job, error) {
	for _, raw := range body.Data {
		job, ok := normalizeRecord(raw)
		if !ok {
			continue
		}
		return &job, nil
	}
	return nil, utils.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
}

// normalizeRecord maps a JSearch record to the canonical Job.
func normalizeRecord(raw rawJob) (models.Job, bool) {
	if strings.TrimSpace(raw.JobTitle) == "" || strings.TrimSpace(raw.EmployerName) == "" {
		return models.Job{}, false
	}

	var coordinates *[2]float64
	if raw.JobLatitude != nil && raw.JobLongitude != nil {
		coordinates = &[2]float64{*raw.JobLatitude, *raw.JobLongitude}
	}

	currency := utils.GetStringOrDefault(raw.JobSalaryCurrency, "USD")
	period := utils.GetStringOrDefault(raw.JobSalaryPeriod, models.PeriodYear)

	remote := raw.JobIsRemote || normalize.InferRemote(raw.JobCity, raw.JobDescription)
	empType := normalize.InferEmploymentType(raw.JobEmploymentType, raw.JobTitle, raw.JobDescription)

	return models.Job{
		Title: raw.JobTitle,
		Company: models.Company{
			Name:    raw.EmployerName,
			Logo:    models.StringPtr(raw.EmployerLogo),
			Website: models.StringPtr(raw.EmployerWebsite),
		},
		Description: raw.JobDescription,
		Salary: models.Salary{
			Min:      raw.JobMinSalary,
			Max:      raw.JobMaxSalary,
			Currency: currency,
			Period:   period,
		},
		Location: models.Location{
			City:        models.StringPtr(raw.JobCity),
			State:       models.StringPtr(raw.JobState),
			Country:     models.StringPtr(raw.JobCountry),
			Remote:      remote,
			Coordinates: coordinates,
		},
		Employment: models.Employment{
			Type:  models.StringPtr(empType),
			Level: models.StringPtr(normalize.InferSeniority(raw.JobTitle, raw.JobDescription)),
		},
		PostedAt:   normalize.ParsePostedAt(raw.JobPostedAtDatetimeUTC),
		Source:     models.SourceJSearch,
		ExternalID: models.StringPtr(raw.JobID),
		ApplyLink:  raw.JobApplyLink,
		IsActive:   true,
	}, true
}
