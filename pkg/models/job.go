package models

import "time"

// Source identifiers for the providers that can produce a job record.
const (
	SourceSerpAPI      = "serpapi"
	SourceGoogleDirect = "google_direct"
	SourceJSearch      = "jsearch"
	SourceCareerjet    = "careerjet"
	SourceLinkedIn     = "linkedin"
	SourceIndeed       = "indeed"
)

// Salary periods as reported by providers.
const (
	PeriodYear  = "YEAR"
	PeriodMonth = "MONTH"
	PeriodHour  = "HOUR"
)

// Job is the canonical, provider-agnostic job posting. Every adapter maps
// into this shape; fields a provider cannot supply are nil pointers, never
// omitted keys, so downstream consumers need no per-source branching.
type Job struct {
	Title       string     `json:"title"`
	Company     Company    `json:"company"`
	Description string     `json:"description"`
	Salary      Salary     `json:"salary"`
	Location    Location   `json:"location"`
	Employment  Employment `json:"employment"`
	PostedAt    time.Time  `json:"postedAt"`
	Source      string     `json:"source"`
	ExternalID  *string    `json:"externalId"`
	ApplyLink   string     `json:"applyLink"`
	IsActive    bool       `json:"isActive"`
}

// Company describes the hiring organization.
type Company struct {
	Name     string  `json:"name"`
	Logo     *string `json:"logo"`
	Website  *string `json:"website"`
	Industry *string `json:"industry"`
}

// Salary is the compensation range. Absent values mean "unknown", never 0.
type Salary struct {
	Min      *int   `json:"min"`
	Max      *int   `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

// Location describes where the job is based.
type Location struct {
	City        *string     `json:"city"`
	State       *string     `json:"state"`
	Country     *string     `json:"country"`
	Remote      bool        `json:"remote"`
	Coordinates *[2]float64 `json:"coordinates"`
}

// Employment carries type ("Full-time", "Contract", ...), seniority level and
// department when a provider exposes them.
type Employment struct {
	Type       *string `json:"type"`
	Level      *string `json:"level"`
	Department *string `json:"department"`
}

// StringPtr returns a pointer to s, or nil when s is empty. Adapters use it
// to keep the "unknown means nil" invariant.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
