package services

import (
	"fmt"
	"time"
)

// FormatLastSeen buckets the elapsed time since lastSeen into display text.
// A zero lastSeen means the user was never seen and yields an empty string.
// Pure function of (now, lastSeen) so it is testable without the store.
func FormatLastSeen(now, lastSeen time.Time) string {
	if lastSeen.IsZero() {
		return ""
	}
	elapsed := now.Sub(lastSeen)
	if elapsed < time.Minute {
		return "a moment ago"
	}
	if elapsed < time.Hour {
		minutes := int(elapsed.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if elapsed < 24*time.Hour {
		hours := int(elapsed.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(elapsed.Hours() / 24)
	if days == 1 {
		return "yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}
