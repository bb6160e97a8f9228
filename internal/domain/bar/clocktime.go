package bar

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Schedules carry a wall-clock time with no date. The store has no
// time-only type, so the value is anchored to "today" and consumers
// must ignore the date component.
var clockRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClockTime validates an "H:MM"/"HH:MM" 24-hour string and anchors
// it to the date of now. Every failure path returns nil; the condition
// is logged for diagnostics but never propagated.
func ParseClockTime(s string, now time.Time) *time.Time {
	if s == "" {
		return nil
	}
	if !clockRegex.MatchString(s) {
		slog.Debug("rejected malformed clock time", "value", s)
		return nil
	}

	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		slog.Debug("rejected clock time hour", "value", s, "error", err.Error())
		return nil
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		slog.Debug("rejected clock time minute", "value", s, "error", err.Error())
		return nil
	}

	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	return &t
}
