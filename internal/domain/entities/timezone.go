package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimezoneLocation resolves the timezone string a user entered during
// registration. Supported forms:
//   - IANA names like "Europe/Moscow"
//   - "UTC" / "GMT"
//   - fixed offsets: "UTC+3", "UTC-7", "UTC+5:30", "+3", "-03:30"
//
// Fixed offsets become time.FixedZone and are DST-agnostic. Registration is
// deliberately lenient, so an unresolvable string surfaces here, at
// scheduling time.
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "UTC") || strings.EqualFold(tz, "Etc/UTC") || strings.EqualFold(tz, "GMT") {
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offSec, ok := parseUTCOffsetSeconds(tz)
	if !ok {
		return nil, fmt.Errorf("unsupported timezone %q", tz)
	}

	return time.FixedZone(formatUTCOffsetName(offSec), offSec), nil
}

func parseUTCOffsetSeconds(tz string) (int, bool) {
	s := strings.TrimSpace(tz)

	// "+3", "-03:30"
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return parseSignedOffset(s)
	}

	// "UTC+3", "UTC-7", "UTC+5:30"
	if strings.HasPrefix(strings.ToUpper(s), "UTC") {
		s = strings.TrimSpace(s[3:])
		if s == "" {
			return 0, true
		}
		if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
			return parseSignedOffset(s)
		}
	}

	return 0, false
}

func parseSignedOffset(s string) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	} else if s[0] != '+' {
		return 0, false
	}
	s = s[1:]

	hh, mm := s, "0"
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, false
		}
		hh, mm = parts[0], parts[1]
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}

	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, false
	}

	return sign * (h*3600 + m*60), true
}

func formatUTCOffsetName(offsetSec int) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetSec/3600, (offsetSec%3600)/60)
}
