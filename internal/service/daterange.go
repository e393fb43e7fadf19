package service

import (
	"strconv"
	"strings"
	"time"
)

const defaultDateRange = 30 * 24 * time.Hour

// ParseDateRange converts a range expression like "7d", "30d" or "24h" into
// the window start relative to now. Unknown or empty expressions fall back to
// a 30 day window.
func ParseDateRange(expr string, now time.Time) time.Time {
	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" {
		return now.Add(-defaultDateRange)
	}
	if strings.HasSuffix(expr, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(expr, "d")); err == nil && days > 0 {
			return now.Add(-time.Duration(days) * 24 * time.Hour)
		}
		return now.Add(-defaultDateRange)
	}
	if d, err := time.ParseDuration(expr); err == nil && d > 0 {
		return now.Add(-d)
	}
	return now.Add(-defaultDateRange)
}
