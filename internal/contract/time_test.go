package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "plural months mixed case", input: "3 MoNtHs AgO", expected: fixedNow.AddDate(0, -3, 0)},
		{name: "singular week", input: "1 Week Ago", expected: fixedNow.AddDate(0, 0, -7)},
		{name: "hours", input: "6 hours ago", expected: fixedNow.Add(-6 * time.Hour)},
		{name: "missing ago", input: "2 years", expectError: true},
		{name: "bad unit", input: "4 decades ago", expectError: true},
		{name: "non-numeric", input: "one year ago", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAbsoluteTime(t *testing.T) {
	got, err := ParseAbsoluteTime("2023-05-05T10:00:05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 5, 5, 10, 0, 5, 0, time.UTC), got)

	got, err = ParseAbsoluteTime("2023-05-05T10:00:05Z", time.UTC)
	require.NoError(t, err)
	assert.True(t, time.Date(2023, 5, 5, 10, 0, 5, 0, time.UTC).Equal(got))

	_, err = ParseAbsoluteTime("May 5", time.UTC)
	assert.Error(t, err)
}

func TestParseLookbackDuration(t *testing.T) {
	tests := []struct {
		input       string
		expected    time.Duration
		expectError bool
	}{
		{input: "30s", expected: 30 * time.Second},
		{input: "0s", expected: 0},
		{input: "2 minutes", expected: 2 * time.Minute},
		{input: "1 Day", expected: 24 * time.Hour},
		{input: "-5s", expectError: true},
		{input: "soon", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLookbackDuration(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
