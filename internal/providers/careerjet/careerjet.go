// Package careerjet fetches jobs from the Careerjet public search API.
// Careerjet exposes no stable job identifiers and reports posting dates as
// relative text, so records lean on the shared normalization fallbacks.
package careerjet

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

const maxPageSize = 99 // Careerjet caps pagesize at 99

// Client calls the Careerjet public API.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates a Careerjet provider from its config block.
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
	return models.SourceCareerjet
}

// Available requires the affiliate id Careerjet hands out per integration.
func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// rawJob is the Careerjet-native job shape.
type rawJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Locations   string `json:"locations"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Site        string `json:"site"`
}

type searchResponse struct {
	Type string   `json:"type"`
	Jobs []rawJob `json:"jobs"`
}

// Fetch runs one Careerjet search and normalizes the results.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	keywords := req.Query
	if req.Filters.Remote {
		keywords += " remote"
	}
	if len(req.Filters.EmploymentTypes) > 0 {
		keywords += " " + strings.Join(req.Filters.EmploymentTypes, " OR ")
	}

	pagesize := req.EffectiveLimit()
	if pagesize > maxPageSize {
		pagesize = maxPageSize
	}

	params := url.Values{}
	params.Set("keywords", keywords)
	params.Set("pagesize", strconv.Itoa(pagesize))
	params.Set("page", "1")
	params.Set("affid", c.cfg.APIKey)
	params.Set("locale_code", c.cfg.Locale)
	if req.Location != "" {
		params.Set("location", req.Location)
	}
	if req.Filters.Sort != "" {
		params.Set("sort", req.Filters.Sort)
	} else {
		params.Set("sort", "relevance")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("careerjet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("careerjet returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding careerjet response: %w", err)
	}
	if body.Type != "JOBS" {
		return nil, fmt.Errorf("careerjet returned response type %q", body.Type)
	}

	jobs := make([]models.Job, 0, len(body.Jobs))
	for _, raw := range body.Jobs {
		job, ok := c.normalizeRecord(raw)
		if !ok {
			c.logger.Debug("Dropping unnormalizable careerjet record", map[string]interface{}{
				"title": raw.Title,
			})
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// normalizeRecord maps a Careerjet record to the canonical Job.
func (c *Client) normalizeRecord(raw rawJob) (models.Job, bool) {
	if strings.TrimSpace(raw.Title) == "" || strings.TrimSpace(raw.Company) == "" {
		return models.Job{}, false
	}

	salaryMin, salaryMax := normalize.ParseSalaryText(raw.Salary)
	city, state, country := normalize.SplitLocation(raw.Locations)

	return models.Job{
		Title: raw.Title,
		Company: models.Company{
			Name:    raw.Company,
			Website: models.StringPtr(raw.Site),
		},
		Description: raw.Description,
		Salary: models.Salary{
			Min:      salaryMin,
			Max:      salaryMax,
			Currency: normalize.CurrencyForLocale(c.cfg.Locale),
			Period:   models.PeriodYear,
		},
		Location: models.Location{
			City:    city,
			State:   state,
			Country: country,
			Remote:  normalize.InferRemote(raw.Locations, raw.Description),
		},
		Employment: models.Employment{
			Type:  models.StringPtr(normalize.InferEmploymentType("", raw.Title, raw.Description)),
			Level: models.StringPtr(normalize.InferSeniority(raw.Title, raw.Description)),
		},
		// Careerjet dates are relative ("3 days ago"): fetch-time fallback.
		PostedAt: normalize.ParsePostedAt(raw.Date),
		Source:   models.SourceCareerjet,
		// Careerjet exposes no stable external id
		ExternalID: nil,
		ApplyLink:  raw.URL,
		IsActive:   true,
	}, true
}
