package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestIDIsUnique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "2.50s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "1.5m", FormatDuration(90*time.Second))
	assert.Equal(t, "2.0h", FormatDuration(2*time.Hour))
}

func TestContains(t *testing.T) {
	sources := []string{"serpapi", "jsearch"}

	assert.True(t, Contains(sources, "jsearch"))
	assert.False(t, Contains(sources, "indeed"))
	assert.False(t, Contains(nil, "serpapi"))
}

func TestGetStringOrDefault(t *testing.T) {
	assert.Equal(t, "USD", GetStringOrDefault("", "USD"))
	assert.Equal(t, "KES", GetStringOrDefault("KES", "USD"))
}

func TestProviderErrorMessage(t *testing.T) {
	err := NewProviderError("jsearch returned status 429")

	assert.Equal(t, "Provider request failed: jsearch returned status 429", err.Error())
	assert.Equal(t, 502, err.Code)
}
