package booking

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate validates a strict YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseClock parses "HH:MM" or "HH:MM:SS" into seconds from midnight.
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// normalizeClock canonicalizes a clock string to "HH:MM:SS", the form slots
// are stored in.
func normalizeClock(s string) (string, error) {
	secs, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60), nil
}

// parseTimeRange splits "HH:MM-HH:MM" (seconds tolerated) into normalized
// start and end clock strings.
func parseTimeRange(s string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid time range %q", s)
	}
	start, err := normalizeClock(parts[0])
	if err != nil {
		return "", "", err
	}
	end, err := normalizeClock(parts[1])
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// clockDistance is the absolute difference in seconds between two stored
// clock strings. Unparseable values sort last.
func clockDistance(a, b string) int {
	as, errA := parseClock(a)
	bs, errB := parseClock(b)
	if errA != nil || errB != nil {
		return 1 << 30
	}
	d := as - bs
	if d < 0 {
		return -d
	}
	return d
}
