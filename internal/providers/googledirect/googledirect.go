// Package googledirect scrapes Google for Jobs results straight from the
// Google search page. It needs no credential, which makes it the free
// fallback behind the official SerpAPI source; the markup it parses is
// undocumented and best-effort.
package googledirect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers/normalize"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client scrapes the Google Jobs panel of a search results page.
type Client struct {
	cfg     config.ProviderConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// New creates a Google Jobs scrape provider from its config block.
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
	return models.SourceGoogleDirect
}

// Available is always true: the scrape needs no API key.
func (c *Client) Available() bool {
	return true
}

// Fetch scrapes one Google search page and extracts the jobs panel.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.Job, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	searchQuery := req.Query + " jobs"
	if req.Location != "" {
		searchQuery += " in " + req.Location
	}
	if req.Filters.Remote {
		searchQuery += " remote"
	}

	params := url.Values{}
	params.Set("q", searchQuery)
	params.Set("ibp", "htl;jobs") // triggers the Google Jobs panel
	params.Set("hl", "en")
	params.Set("gl", normalize.CountryCode(req.Location))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewProviderError(fmt.Sprintf("google search returned status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing google search html: %w", err)
	}

	jobs := c.parseJobs(doc)
	if len(jobs) > req.EffectiveLimit() {
		jobs = jobs[:req.EffectiveLimit()]
	}
	return jobs, nil
}

// parseJobs walks the job cards in the rendered jobs panel. Google's class
// names churn, so a couple of known selectors are tried in order.
func (c *Client) parseJobs(doc *goquery.Document) []models.Job {
	var jobs []models.Job

	cards := doc.Find("div.PwjeAc")
	if cards.Length() == 0 {
		cards = doc.Find("li.iFjolb")
	}
	if cards.Length() == 0 {
		cards = doc.Find("div[data-job-id]")
	}

	cards.Each(func(_ int, card *goquery.Selection) {
		job, ok := c.parseCard(card)
		if !ok {
			return
		}
		jobs = append(jobs, job)
	})

	c.logger.Debug("Parsed google jobs panel", map[string]interface{}{
		"cards": cards.Length(),
		"jobs":  len(jobs),
	})
	return jobs
}

// parseCard extracts one job card; cards missing a title or company are
// discarded rather than half-filled.
func (c *Client) parseCard(card *goquery.Selection) (models.Job, bool) {
	title := strings.TrimSpace(card.Find("div.BjJfJf, h2, div[role=heading]").First().Text())
	company := strings.TrimSpace(card.Find("div.vNEEBe, div.nJlQNd").First().Text())
	locationStr := strings.TrimSpace(card.Find("div.Qk80Jf").First().Text())
	description := strings.TrimSpace(card.Find("span.HBvzbc, div.YgLbBe").First().Text())

	if title == "" || company == "" {
		return models.Job{}, false
	}

	city, state, country := normalize.SplitLocation(locationStr)

	applyLink, _ := card.Find("a").First().Attr("href")
	if applyLink != "" && strings.HasPrefix(applyLink, "/") {
		applyLink = "https://www.google.com" + applyLink
	}

	externalID, hasID := card.Attr("data-job-id")

	job := models.Job{
		Title:       title,
		Company:     models.Company{Name: company},
		Description: description,
		Salary: models.Salary{
			Currency: "USD",
			Period:   models.PeriodYear,
		},
		Location: models.Location{
			City:    city,
			State:   state,
			Country: country,
			Remote:  normalize.InferRemote(locationStr, description),
		},
		Employment: models.Employment{
			Type:  models.StringPtr(normalize.InferEmploymentType("", title, description)),
			Level: models.StringPtr(normalize.InferSeniority(title, description)),
		},
		// The panel only shows relative ages ("3 days ago"): fetch time is
		// the documented fallback.
		PostedAt:  normalize.ParsePostedAt(""),
		Source:    models.SourceGoogleDirect,
		ApplyLink: applyLink,
		IsActive:  true,
	}
	if hasID {
		job.ExternalID = models.StringPtr(externalID)
	}

	return job, true
}
