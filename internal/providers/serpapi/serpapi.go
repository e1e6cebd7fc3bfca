// Package serpapi fetches Google for Jobs results through SerpAPI, the
// highest-fidelity source in the registry.
package serpapi

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

// Client calls the SerpAPI google_jobs engine.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates a SerpAPI provider from its config block.
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
	return models.SourceSerpAPI
}

func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

// rawResult is the SerpAPI-native job shape.
type rawResult struct {
	JobID              string `json:"job_id"`
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	Description        string `json:"description"`
	Thumbnail          string `json:"thumbnail"`
	ShareLink          string `json:"share_link"`
	DetectedExtensions struct {
		PostedAt     string `json:"posted_at"`
		ScheduleType string `json:"schedule_type"`
		Salary       string `json:"salary"`
	} `json:"detected_extensions"`
	ApplyOptions []struct {
		Link string `json:"link"`
	} `json:"apply_options"`
}

type searchResponse struct {
	Error      string      `json:"error"`
	JobResults []rawResult `json:"jobs_results"`
}

// Fetch runs one google_jobs search and normalizes the results.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", req.Query)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("hl", "en")
	params.Set("num", strconv.Itoa(req.EffectiveLimit()))
	if req.Location != "" {
		params.Set("location", req.Location)
		params.Set("gl", normalize.CountryCode(req.Location))
	}
	if chips := buildChips(&req.Filters); chips != "" {
		params.Set("chips", chips)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("serpapi returned status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding serpapi response: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", body.Error)
	}

	jobs := make([]models.Job, 0, len(body.JobResults))
	for _, raw := range body.JobResults {
		job, ok := normalizeRecord(raw)
		if !ok {
			c.logger.Debug("Dropping unnormalizable serpapi record", map[string]interface{}{
				"job_id": raw.JobID,
			})
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// buildChips translates the request filters into the SerpAPI chips parameter.
func buildChips(filters *models.SearchFilters) string {
	var chips []string

	if filters.DatePosted != "" {
		chips = append(chips, "date_posted:"+filters.DatePosted)
	}
	for _, et := range filters.EmploymentTypes {
		switch strings.ToLower(strings.ReplaceAll(et, "-", "")) {
		case "fulltime":
			chips = append(chips, "employment_type:FULLTIME")
		case "parttime":
			chips = append(chips, "employment_type:PARTTIME")
		case "contract", "contractor":
			chips = append(chips, "employment_type:CONTRACTOR")
		case "intern", "internship":
			chips = append(chips, "employment_type:INTERN")
		}
	}

	return strings.Join(chips, ",")
}

// normalizeRecord maps a SerpAPI record to the canonical Job. Records without a
// usable title and company are discarded.
func normalizeRecord(raw rawResult) (models.Job, bool) {
	if strings.TrimSpace(raw.Title) == "" || strings.TrimSpace(raw.CompanyName) == "" {
		return models.Job{}, false
	}

	salaryMin, salaryMax := normalize.ParseSalaryText(raw.DetectedExtensions.Salary)
	city, state, country := normalize.SplitLocation(raw.Location)

	applyLink := raw.ShareLink
	if len(raw.ApplyOptions) > 0 && raw.ApplyOptions[0].Link != "" {
		applyLink = raw.ApplyOptions[0].Link
	}

	empType := normalize.InferEmploymentType(raw.DetectedExtensions.ScheduleType, raw.Title, raw.Description)

	return models.Job{
		Title:       raw.Title,
		Company:     models.Company{Name: raw.CompanyName, Logo: models.StringPtr(raw.Thumbnail)},
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
			Type:  models.StringPtr(empType),
			Level: models.StringPtr(normalize.InferSeniority(raw.Title, raw.Description)),
		},
		// posted_at is relative text ("3 days ago"); the fetch-time fallback
		// is a documented lossy approximation.
		PostedAt:   normalize.ParsePostedAt(raw.DetectedExtensions.PostedAt),
		Source:     models.SourceSerpAPI,
		ExternalID: models.StringPtr(raw.JobID),
		ApplyLink:  applyLink,
		IsActive:   true,
	}, true
}
