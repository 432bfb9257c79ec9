// utils/time_utils.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// LastClockHour is the latest hour an itinerary slot may end on; slots never roll into the next day.
const LastClockHour = 23

// ParseClock splits an "HH:MM" wall-clock string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("clock %q: missing colon", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil {
		return 0, 0, fmt.Errorf("clock %q: %w", s, err)
	}
	if minute, err = strconv.Atoi(mm); err != nil {
		return 0, 0, fmt.Errorf("clock %q: %w", s, err)
	}
	return hour, minute, nil
}

func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// AddHourClamped returns start plus one hour with the hour capped at LastClockHour,
// so "23:30" stays "23:30" instead of wrapping to "00:30".
func AddHourClamped(start string) (string, error) {
	h, m, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	return FormatClock(min(h+1, LastClockHour), m), nil
}
