package consultation

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime24To12 converts an "HH:MM" token to 12-hour display form,
// e.g. "13:30" -> "1:30 PM". The empty string stays empty.
func FormatTime24To12(time24 string) string {
	if time24 == "" {
		return ""
	}

	parts := strings.SplitN(time24, ":", 2)
	if len(parts) != 2 {
		return time24
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time24
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%s %s", hour, parts[1], ampm)
}
