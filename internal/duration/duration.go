// Package duration parses the short retention durations used on the
// command line: "12h", "7d", "4w" and "3m".
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Day is 24 hours; a month counts as 30 days.
const Day = 24 * time.Hour

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

var units = map[string]time.Duration{
	"h": time.Hour,
	"d": Day,
	"w": 7 * Day,
	"m": 30 * Day,
}

// Parse parses Nh (hours), Nd (days), Nw (weeks) or Nm (30-day months).
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (use 12h, 7d, 4w or 3m)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Duration(n) * units[m[2]], nil
}
