package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryText(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  *int
		max  *int
	}{
		{"range with dollars", "$50,000 - $70,000", intPtr(50000), intPtr(70000)},
		{"range with suffix", "$80,000 - $120,000 a year", intPtr(80000), intPtr(120000)},
		{"single value", "KSh 95,000 per month", intPtr(95000), nil},
		{"pounds", "£45,000-£55,000", intPtr(45000), intPtr(55000)},
		{"unparseable", "competitive salary", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ParseSalaryText(tt.text)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestInferRemote(t *testing.T) {
	assert.True(t, InferRemote("Remote - Kenya"))
	assert.True(t, InferRemote("Nairobi", "This role allows Work From Home two days a week"))
	assert.True(t, InferRemote("Anywhere"))
	assert.False(t, InferRemote("Nairobi, Kenya", "On-site engineering role"))
}

func TestInferEmploymentType(t *testing.T) {
	// Explicit provider field wins over keywords
	assert.Equal(t, TypePartTime, InferEmploymentType("PARTTIME", "Contract Developer", ""))
	assert.Equal(t, TypeFullTime, InferEmploymentType("FULLTIME", "", ""))
	assert.Equal(t, TypeContract, InferEmploymentType("contractor", "", ""))

	// Keyword match on title/description
	assert.Equal(t, TypeContract, InferEmploymentType("", "Contract Data Engineer", ""))
	assert.Equal(t, TypeInternship, InferEmploymentType("", "Software Intern", ""))
	assert.Equal(t, TypePartTime, InferEmploymentType("", "Accountant", "part time position"))

	// Default
	assert.Equal(t, TypeFullTime, InferEmploymentType("", "Data Engineer", "build pipelines"))
}

func TestInferSeniority(t *testing.T) {
	assert.Equal(t, LevelSenior, InferSeniority("Senior Data Engineer", ""))
	assert.Equal(t, LevelSenior, InferSeniority("Staff Engineer", ""))
	assert.Equal(t, LevelEntry, InferSeniority("Junior Developer", ""))
	assert.Equal(t, LevelInternship, InferSeniority("Engineering Trainee", ""))
	assert.Equal(t, LevelMid, InferSeniority("Developer", "looking for an intermediate engineer"))
	assert.Equal(t, LevelNotSpecified, InferSeniority("Data Engineer", "build pipelines"))
}

func TestParsePostedAt(t *testing.T) {
	// ISO-8601 parses exactly
	got := ParsePostedAt("2025-11-03T10:30:00Z")
	assert.Equal(t, time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC), got)

	got = ParsePostedAt("2025-11-03")
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.November, got.Month())

	// Relative text falls back to roughly now
	before := time.Now().UTC()
	got = ParsePostedAt("3 days ago")
	assert.WithinDuration(t, before, got, 5*time.Second)

	got = ParsePostedAt("")
	assert.WithinDuration(t, time.Now().UTC(), got, 5*time.Second)
}

func TestSplitLocation(t *testing.T) {
	city, state, country := SplitLocation("Nairobi, Kenya")
	require.NotNil(t, city)
	require.NotNil(t, state)
	require.NotNil(t, country)
	assert.Equal(t, "Nairobi", *city)
	assert.Equal(t, "Kenya", *state)
	assert.Equal(t, "Kenya", *country)

	city, state, country = SplitLocation("Austin, TX, USA")
	assert.Equal(t, "Austin", *city)
	assert.Equal(t, "TX", *state)
	assert.Equal(t, "USA", *country)

	city, state, country = SplitLocation("London")
	assert.Equal(t, "London", *city)
	assert.Nil(t, state)
	assert.Nil(t, country)

	city, state, country = SplitLocation("")
	assert.Nil(t, city)
	assert.Nil(t, state)
	assert.Nil(t, country)
}

func TestCurrencyForLocale(t *testing.T) {
	assert.Equal(t, "GBP", CurrencyForLocale("en_GB"))
	assert.Equal(t, "EUR", CurrencyForLocale("de_DE"))
	assert.Equal(t, "USD", CurrencyForLocale("xx_XX"))
}

func TestCountryCode(t *testing.T) {
	assert.Equal(t, "ke", CountryCode("Nairobi, Kenya"))
	assert.Equal(t, "gb", CountryCode("London, United Kingdom"))
	assert.Equal(t, "us", CountryCode("Springfield"))
}

func intPtr(n int) *int { return &n }
