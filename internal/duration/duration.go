// Package duration provides parsing for human-readable duration strings.
//
// Accepts Go's time.ParseDuration format ("90s", "5m", "1h30m") plus day
// and week units ("2d", "1w"), which users reach for when configuring
// edit TTLs. Matches common CLI conventions.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var longUnits = regexp.MustCompile(`^(\d+)([dw])$`)

// Parse parses a duration string. Day ("Nd") and week ("Nw") forms are
// handled here; everything else is delegated to time.ParseDuration.
func Parse(s string) (time.Duration, error) {
	matches := longUnits.FindStringSubmatch(s)
	if matches == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: %s (use 30s, 5m, 2h, 1d, or 1w)", s)
		}
		return d, nil
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		// Regex ensures digits only, but handle error for correctness
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	switch matches[2] {
	case "d":
		return time.Duration(num) * 24 * time.Hour, nil
	case "w":
		return time.Duration(num) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration unit: %s", matches[2])
	}
}
