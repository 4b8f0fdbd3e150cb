package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// DayTime is a time of day with minute granularity, as entered by the user
// in 24-hour "HH:MM" form.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses a strict 24-hour "HH:MM" string.
func ParseDayTime(s string) (DayTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return DayTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return DayTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return DayTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return DayTime{}, fmt.Errorf("time %q out of range", s)
	}

	return DayTime{Hour: h, Minute: m}, nil
}

func (t DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
