package deadline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sportzone-booking/errors"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

var (
	dayFirstPattern  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})\s+(\d{1,2}):(\d{2})`)
	yearFirstPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{2})`)
)

// February is always 28 days here.
var monthDays = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// CalendarDateTime is a wall clock reading with no time zone.
type CalendarDateTime struct {
	Year, Month, Day, Hour, Minute int
}

func FromTime(t time.Time) CalendarDateTime {
	return CalendarDateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// ParseManual extracts a date without the time package. Day/month input is read day
// first; when the second number cannot be a month the two are swapped, so 12/25/2025
// reads as 25 December. Strings like 03/04/2025 stay ambiguous and are read as 3 April.
// Trailing text after the minutes is ignored.
func ParseManual(text string) (CalendarDateTime, error) {
	text = strings.TrimSpace(text)

	var dt CalendarDateTime
	if m := yearFirstPattern.FindStringSubmatch(text); m != nil {
		n := atois(m[1:])
		dt = CalendarDateTime{Year: n[0], Month: n[1], Day: n[2], Hour: n[3], Minute: n[4]}
	} else if m := dayFirstPattern.FindStringSubmatch(text); m != nil {
		n := atois(m[1:])
		dt = CalendarDateTime{Day: n[0], Month: n[1], Year: n[2], Hour: n[3], Minute: n[4]}
		if dt.Month > 12 {
			dt.Day, dt.Month = dt.Month, dt.Day
		}
	} else {
		return CalendarDateTime{}, fmt.Errorf("%w: %q, use %s", errors.ErrInvalidDateFormat, text, Usage)
	}

	if dt.Month < 1 || dt.Month > 12 {
		return CalendarDateTime{}, fmt.Errorf("%w: %q has no valid month", errors.ErrInvalidDateFormat, text)
	}
	return dt, nil
}

// ManualEpochSeconds approximates seconds since 1970 by counting days. The leap term
// (year-1969)/4 ignores century rules and the month table never has a 29th of February,
// and the day of month is added unadjusted, so 1970-01-01 00:00 gives one day.
// Differences between two readings are what callers should rely on.
func ManualEpochSeconds(dt CalendarDateTime) int64 {
	year := int64(dt.Year)
	days := (year-1970)*365 + floorDiv(year-1969, 4)
	for _, n := range monthDays[:dt.Month-1] {
		days += n
	}
	days += int64(dt.Day)
	return days*secondsPerDay + int64(dt.Hour)*secondsPerHour + int64(dt.Minute)*secondsPerMinute
}

// TimeRemainingManual is TimeRemaining using ParseManual and ManualEpochSeconds.
// now is read as a wall clock in its own location.
func TimeRemainingManual(text string, now time.Time) (Remaining, error) {
	target, err := ParseManual(text)
	if err != nil {
		return Remaining{}, err
	}
	remaining := ManualEpochSeconds(target) - ManualEpochSeconds(FromTime(now))
	return splitSeconds(remaining), nil
}

func atois(groups []string) []int {
	out := make([]int, len(groups))
	for i, g := range groups {
		// the patterns only capture digits
		out[i], _ = strconv.Atoi(g)
	}
	return out
}
