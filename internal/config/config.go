package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProviderConfig holds the per-provider client settings. A provider whose
// credential is empty reports itself unavailable and is excluded from the
// active set; it is never treated as an error.
type ProviderConfig struct {
	Enabled   bool          `yaml:"enabled"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Host      string        `yaml:"host"`       // RapidAPI host header where applicable
	Locale    string        `yaml:"locale"`     // careerjet only
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// LogAdapterConfig configures one logging output adapter.
type LogAdapterConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // stdout or file
	Enabled  bool   `yaml:"enabled"`
	Format   string `yaml:"format"`
	FilePath string `yaml:"file_path"`
}

// ScheduledSearch is one query the background refresher re-runs on a cron
// interval to keep the job store warm.
type ScheduledSearch struct {
	Query    string `yaml:"query"`
	Location string `yaml:"location"`
	Limit    int    `yaml:"limit"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Providers struct {
		// Priority determines dispatch and merge order; earlier sources win
		// dedup ties, so official APIs come before free scrape fallbacks.
		Priority     []string       `yaml:"priority"`
		SerpAPI      ProviderConfig `yaml:"serpapi"`
		GoogleDirect ProviderConfig `yaml:"google_direct"`
		JSearch      ProviderConfig `yaml:"jsearch"`
		Careerjet    ProviderConfig `yaml:"careerjet"`
		LinkedIn     ProviderConfig `yaml:"linkedin"`
		Indeed       ProviderConfig `yaml:"indeed"`
	} `yaml:"providers"`

	Redis struct {
		URL      string        `yaml:"url"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"redis"`

	Cache struct {
		Enabled   bool          `yaml:"enabled"`
		TTL       time.Duration `yaml:"ttl"`
		KeyPrefix string        `yaml:"key_prefix"`
	} `yaml:"cache"`

	Storage struct {
		Enabled     bool   `yaml:"enabled"`
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"storage"`

	Scheduler struct {
		Enabled  bool              `yaml:"enabled"`
		Interval time.Duration     `yaml:"interval"`
		Searches []ScheduledSearch `yaml:"searches"`
	} `yaml:"scheduler"`

	Logging struct {
		Level    string             `yaml:"level"`
		Format   string             `yaml:"format"`
		Adapters []LogAdapterConfig `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}
	config.setDefaults()

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

func (c *Config) setDefaults() {
	c.Server.Port = 8080
	c.Server.Host = "0.0.0.0"
	c.Server.ReadTimeout = 30 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	c.Server.IdleTimeout = 60 * time.Second

	c.Providers.Priority = []string{
		"serpapi", "google_direct", "jsearch", "careerjet", "linkedin", "indeed",
	}

	c.Providers.SerpAPI = ProviderConfig{
		Enabled:   true,
		BaseURL:   "https://serpapi.com/search",
		Timeout:   15 * time.Second,
		RateLimit: 1,
	}
	c.Providers.GoogleDirect = ProviderConfig{
		Enabled:   true,
		BaseURL:   "https://www.google.com/search",
		Timeout:   15 * time.Second,
		RateLimit: 0.5,
	}
	c.Providers.JSearch = ProviderConfig{
		Enabled:   true,
		Host:      "jsearch.p.rapidapi.com",
		Timeout:   10 * time.Second,
		RateLimit: 1,
	}
	c.Providers.Careerjet = ProviderConfig{
		Enabled:   true,
		BaseURL:   "https://public.api.careerjet.net/search",
		Locale:    "en_US",
		Timeout:   10 * time.Second,
		RateLimit: 1,
	}
	c.Providers.LinkedIn = ProviderConfig{
		Enabled:   true,
		Host:      "linkedin-job-search-api.p.rapidapi.com",
		Timeout:   30 * time.Second,
		RateLimit: 1,
	}
	c.Providers.Indeed = ProviderConfig{
		Enabled:   true,
		Host:      "indeed-jobs-scraper-api.p.rapidapi.com",
		Timeout:   30 * time.Second,
		RateLimit: 1,
	}

	c.Redis.URL = "redis://localhost:6379"
	c.Redis.DB = 0
	c.Redis.Timeout = 5 * time.Second

	c.Cache.Enabled = true
	c.Cache.TTL = 3600 * time.Second
	c.Cache.KeyPrefix = "jobs:"

	c.Scheduler.Interval = 6 * time.Hour

	c.Logging.Level = "info"
	c.Logging.Format = "json"
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if key := os.Getenv("SERPAPI_KEY"); key != "" {
		c.Providers.SerpAPI.APIKey = key
	}

	// Also support SERPAPI_API_KEY for compatibility
	if key := os.Getenv("SERPAPI_API_KEY"); key != "" {
		c.Providers.SerpAPI.APIKey = key
	}

	if key := os.Getenv("JSEARCH_API_KEY"); key != "" {
		c.Providers.JSearch.APIKey = key
	}

	if host := os.Getenv("JSEARCH_API_HOST"); host != "" {
		c.Providers.JSearch.Host = host
	}

	// The RapidAPI key is shared by every RapidAPI-hosted provider
	if key := os.Getenv("RAPIDAPI_KEY"); key != "" {
		if c.Providers.JSearch.APIKey == "" {
			c.Providers.JSearch.APIKey = key
		}
		c.Providers.LinkedIn.APIKey = key
		c.Providers.Indeed.APIKey = key
	}

	if key := os.Getenv("CAREERJET_AFFID"); key != "" {
		c.Providers.Careerjet.APIKey = key
	}

	if locale := os.Getenv("CAREERJET_LOCALE"); locale != "" {
		c.Providers.Careerjet.Locale = locale
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if cacheTTL := os.Getenv("CACHE_TTL"); cacheTTL != "" {
		if ttl, err := time.ParseDuration(cacheTTL); err == nil {
			c.Cache.TTL = ttl
		}
	}

	if cacheEnabled := os.Getenv("CACHE_ENABLED"); cacheEnabled != "" {
		c.Cache.Enabled = cacheEnabled == "true" || cacheEnabled == "1"
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Storage.PostgresURL = dbURL
		c.Storage.Enabled = true
	}

	if schedEnabled := os.Getenv("SCHEDULER_ENABLED"); schedEnabled != "" {
		c.Scheduler.Enabled = schedEnabled == "true" || schedEnabled == "1"
	}

	if interval := os.Getenv("SCHEDULER_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Scheduler.Interval = d
		}
	}
}

// ProviderByName returns the config block for a known provider source tag.
func (c *Config) ProviderByName(name string) (ProviderConfig, bool) {
	switch name {
	case "serpapi":
		return c.Providers.SerpAPI, true
	case "google_direct":
		return c.Providers.GoogleDirect, true
	case "jsearch":
		return c.Providers.JSearch, true
	case "careerjet":
		return c.Providers.Careerjet, true
	case "linkedin":
		return c.Providers.LinkedIn, true
	case "indeed":
		return c.Providers.Indeed, true
	default:
		return ProviderConfig{}, false
	}
}
