package utils

import (
	"fmt"
	"strings"
)

// FormatFileSize converts a byte length into a human-readable binary unit string such as "1.5 KiB".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
	return formatted + " " + units[unitIndex]
}
