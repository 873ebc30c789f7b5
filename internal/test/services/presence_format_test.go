package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
)

func TestFormatLastSeen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"just now", 5 * time.Second, "a moment ago"},
		{"under a minute", 59 * time.Second, "a moment ago"},
		{"one minute", 90 * time.Second, "1 minute ago"},
		{"minutes", 5 * time.Minute, "5 minutes ago"},
		{"under an hour", 59 * time.Minute, "59 minutes ago"},
		{"one hour", 90 * time.Minute, "1 hour ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"under a day", 23 * time.Hour, "23 hours ago"},
		{"yesterday", 25 * time.Hour, "yesterday"},
		{"day boundary", 47 * time.Hour, "yesterday"},
		{"days", 50 * time.Hour, "2 days ago"},
		{"weeks", 10 * 24 * time.Hour, "10 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FormatLastSeen(now, now.Add(-tt.elapsed))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLastSeen_NeverSeen(t *testing.T) {
	// A zero timestamp marks a user with no presence record; rendering the
	// elapsed time since year one would be nonsense.
	assert.Equal(t, "", services.FormatLastSeen(time.Now(), time.Time{}))
}
