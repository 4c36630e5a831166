package runid

import (
	"fmt"
	"strconv"
	"strings"
)

// Format returns a run ID like "2026-08-001".
func Format(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// Parse parses "2026-08-001" into year, month, seq.
func Parse(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid run ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in run ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in run ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in run ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// Next returns the run ID following prev within the same month, or the first
// ID of the given month when prev is from an earlier month or empty.
func Next(prev string, year, month int) string {
	if prev != "" {
		py, pm, seq, err := Parse(prev)
		if err == nil && py == year && pm == month {
			return Format(year, month, seq+1)
		}
	}
	return Format(year, month, 1)
}
