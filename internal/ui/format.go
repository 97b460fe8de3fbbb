package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes formats a byte count as a human-readable string using the
// largest base-1024 unit that fits, up to TB. Fractions are rendered with
// up to two decimal places, trailing zeros trimmed: 1536 -> "1.5 KB",
// 1024 -> "1 KB".
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB"}
	value := strconv.FormatFloat(float64(bytes)/float64(div), 'f', 2, 64)
	value = strings.TrimRight(value, "0")
	value = strings.TrimSuffix(value, ".")
	return value + " " + units[exp]
}

// FormatPercent renders a percentage with two decimal places.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
