package utils

import (
	"fmt"
	"time"
	"unicode"
)

// TruncateString cuts str at the last word boundary before maxLen runes and
// appends suffix. Strings within the limit come back unchanged.
func TruncateString(str string, maxLen int, suffix string) string {
	if maxLen <= 0 {
		return suffix
	}

	currentIndex := 0
	spaceIndex := maxLen

	for i, r := range str {
		if unicode.IsSpace(r) {
			spaceIndex = i
		}

		currentIndex++
		if currentIndex > maxLen {
			return str[:spaceIndex] + suffix
		}
	}

	return str
}

// FormatDuration renders a playback duration as m:ss or h:mm:ss.
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	totalSeconds := int(duration.Round(time.Second).Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
