package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetPattern = regexp.MustCompile(`^([+-]?)(\d+)([hdwMy])$`)

// ParseDate reads a due date relative to now. It accepts "none" (returns
// nil), the keywords today/tomorrow/yesterday, offsets such as +3d or 2w,
// and absolute dates with an optional time of day. Dates without a time of
// day resolve to the start of that day in now's location.
func ParseDate(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)

	if strings.EqualFold(value, "none") {
		return nil, nil
	}

	if t, ok := parseRelativeKeyword(strings.ToLower(value), now); ok {
		return &t, nil
	}

	if t, err := parseRelativeOffset(value, now); err == nil {
		return &t, nil
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"02-01-2006",
		"02/01/2006",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, now.Location()); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unable to parse date: %s (expected ISO date, relative keyword, or offset)", value)
}

func parseRelativeKeyword(value string, now time.Time) (time.Time, bool) {
	switch value {
	case "today":
		return StartOfDay(now), true
	case "tomorrow":
		return StartOfDay(now.AddDate(0, 0, 1)), true
	case "yesterday":
		return StartOfDay(now.AddDate(0, 0, -1)), true
	default:
		return time.Time{}, false
	}
}

func parseRelativeOffset(value string, now time.Time) (time.Time, error) {
	matches := offsetPattern.FindStringSubmatch(value)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid offset format")
	}

	num, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number in offset: %s", matches[2])
	}
	if matches[1] == "-" {
		num = -num
	}

	switch matches[3] {
	case "h":
		return now.Add(time.Duration(num) * time.Hour), nil
	case "d":
		return StartOfDay(now.AddDate(0, 0, num)), nil
	case "w":
		return StartOfDay(now.AddDate(0, 0, num*7)), nil
	case "M":
		return StartOfDay(now.AddDate(0, num, 0)), nil
	case "y":
		return StartOfDay(now.AddDate(num, 0, 0)), nil
	default:
		return time.Time{}, fmt.Errorf("unknown unit: %s", matches[3])
	}
}

// ParseDateRange reads "a..b", a single day, or an open bound with one of
// the operators <, <=, >, >=. The returned end is inclusive.
func ParseDateRange(value string, operator string, now time.Time) (*time.Time, *time.Time, error) {
	switch operator {
	case "<", "<=":
		t, err := mustParse(value, now)
		if err != nil {
			return nil, nil, err
		}
		if operator == "<" {
			end := t.Add(-time.Nanosecond)
			return nil, &end, nil
		}
		end := EndOfDay(t)
		return nil, &end, nil

	case ">", ">=":
		t, err := mustParse(value, now)
		if err != nil {
			return nil, nil, err
		}
		if operator == ">" {
			start := EndOfDay(t).Add(time.Nanosecond)
			return &start, nil, nil
		}
		return &t, nil, nil
	}

	if strings.Contains(value, "..") {
		parts := strings.Split(value, "..")
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("invalid range syntax: %s", value)
		}

		start, err := mustParse(strings.TrimSpace(parts[0]), now)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid range start: %w", err)
		}

		end, err := mustParse(strings.TrimSpace(parts[1]), now)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid range end: %w", err)
		}

		endOfDay := EndOfDay(end)
		return &start, &endOfDay, nil
	}

	t, err := ParseDate(value, now)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, nil
	}

	endOfDay := EndOfDay(*t)
	return t, &endOfDay, nil
}

func mustParse(value string, now time.Time) (time.Time, error) {
	t, err := ParseDate(value, now)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("a date is required, got %q", value)
	}
	return *t, nil
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999999999, t.Location())
}

// DayKey identifies the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t.In(loc))
}
