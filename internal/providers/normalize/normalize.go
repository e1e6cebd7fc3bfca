// Package normalize holds the field heuristics shared by the provider
// adapters: salary text parsing, remote/type/seniority inference, posted-date
// fallbacks and location splitting.
package normalize

import (
	"strings"
	"time"
	"unicode"

	"careergenie-jobs/pkg/models"
)

var remoteMarkers = []string{"remote", "work from home", "anywhere"}

// InferRemote reports whether any of the given texts marks the job as remote.
// Case-insensitive containment check over location and description text.
func InferRemote(texts ...string) bool {
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, marker := range remoteMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

// ParseSalaryText extracts a numeric min/max from free-text salary strings
// like "$50,000 - $70,000 a year" or "KSh 80,000 per month". Currency symbols
// and thousand separators are stripped; unparseable text yields nil, nil —
// never zero.
func ParseSalaryText(text string) (min, max *int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	numbers := extractNumbers(text)
	if len(numbers) == 0 {
		return nil, nil
	}

	min = models.IntPtr(numbers[0])
	if len(numbers) > 1 {
		max = models.IntPtr(numbers[1])
	}
	return min, max
}

// extractNumbers pulls digit runs out of text, joining runs separated only by
// thousand separators ("50,000" is one number, not two).
func extractNumbers(text string) []int {
	var numbers []int
	var current int
	inNumber := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			current = current*10 + int(r-'0')
			inNumber = true
		case r == ',' && inNumber && i+1 < len(runes) && unicode.IsDigit(runes[i+1]):
			// thousand separator inside a number
		default:
			if inNumber {
				numbers = append(numbers, current)
				current = 0
				inNumber = false
			}
		}
	}
	if inNumber {
		numbers = append(numbers, current)
	}
	return numbers
}

// Employment types in canonical spelling.
const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

// MapEmploymentType maps a provider-native employment tag (FULLTIME,
// part_time, contractor, ...) to the canonical spelling. Empty input yields
// empty output so callers can fall through to keyword inference.
func MapEmploymentType(raw string) string {
	normalized := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(raw, "_", ""), "-", ""))
	switch {
	case normalized == "":
		return ""
	case strings.Contains(normalized, "full"):
		return TypeFullTime
	case strings.Contains(normalized, "part"):
		return TypePartTime
	case strings.Contains(normalized, "contract"):
		return TypeContract
	case strings.Contains(normalized, "intern"):
		return TypeInternship
	default:
		return raw
	}
}

// InferEmploymentType resolves the employment type with the ordered
// precedence: explicit provider field > title/description keyword match >
// default "Full-time".
func InferEmploymentType(explicit, title, description string) string {
	if mapped := MapEmploymentType(explicit); mapped != "" {
		return mapped
	}

	text := strings.ToLower(title + " " + description)
	switch {
	case strings.Contains(text, "part-time") || strings.Contains(text, "part time"):
		return TypePartTime
	case strings.Contains(text, "contract"):
		return TypeContract
	case strings.Contains(text, "intern"):
		return TypeInternship
	default:
		return TypeFullTime
	}
}

// Seniority levels in canonical spelling.
const (
	LevelSenior       = "Senior"
	LevelMid          = "Mid Level"
	LevelEntry        = "Entry Level"
	LevelInternship   = "Internship"
	LevelNotSpecified = "Not Specified"
)

var (
	seniorKeywords = []string{"senior", "sr.", "lead", "principal", "staff", "expert"}
	entryKeywords  = []string{"junior", "jr.", "entry", "entry-level", "associate", "graduate"}
	internKeywords = []string{"intern", "internship", "trainee"}
	midKeywords    = []string{"mid-level", "mid level", "intermediate"}
)

// InferSeniority derives a seniority level from title+description keywords,
// defaulting to "Not Specified".
func InferSeniority(title, description string) string {
	text := strings.ToLower(title + " " + description)

	switch {
	case containsAny(text, seniorKeywords):
		return LevelSenior
	case containsAny(text, entryKeywords):
		return LevelEntry
	case containsAny(text, internKeywords):
		return LevelInternship
	case containsAny(text, midKeywords):
		return LevelMid
	default:
		return LevelNotSpecified
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParsePostedAt parses a provider timestamp, preferring ISO-8601 forms. On
// failure it falls back to the time of normalization: providers that only
// supply relative text ("3 days ago") lose temporal accuracy, which is a
// documented approximation, not corrected here.
func ParsePostedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC()
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return time.Now().UTC()
}

// SplitLocation splits a "City, State, Country" string into its parts. With
// two segments the second doubles as both state and country, matching how
// most boards format "Nairobi, Kenya".
func SplitLocation(location string) (city, state, country *string) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil, nil
	}

	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city = models.StringPtr(parts[0])
	if len(parts) > 1 {
		state = models.StringPtr(parts[1])
		country = models.StringPtr(parts[len(parts)-1])
	}
	return city, state, country
}

var localeCurrencies = map[string]string{
	"en_US": "USD",
	"en_GB": "GBP",
	"en_CA": "CAD",
	"en_AU": "AUD",
	"en_IN": "INR",
	"fr_FR": "EUR",
	"de_DE": "EUR",
	"es_ES": "EUR",
	"it_IT": "EUR",
	"pt_BR": "BRL",
	"ja_JP": "JPY",
	"zh_CN": "CNY",
}

// CurrencyForLocale maps a provider locale to its currency code, defaulting
// to USD.
func CurrencyForLocale(locale string) string {
	if currency, ok := localeCurrencies[locale]; ok {
		return currency
	}
	return "USD"
}

var countryCodes = map[string]string{
	"kenya":          "ke",
	"nairobi":        "ke",
	"united states":  "us",
	"usa":            "us",
	"uk":             "gb",
	"united kingdom": "gb",
	"canada":         "ca",
	"india":          "in",
	"australia":      "au",
	"germany":        "de",
	"france":         "fr",
	"nigeria":        "ng",
	"south africa":   "za",
	"ghana":          "gh",
	"uganda":         "ug",
	"tanzania":       "tz",
}

// CountryCode guesses the two-letter country code from a free-text location,
// defaulting to "us".
func CountryCode(location string) string {
	lower := strings.ToLower(location)
	for country, code := range countryCodes {
		if strings.Contains(lower, country) {
			return code
		}
	}
	return "us"
}
