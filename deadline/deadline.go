// Package deadline works out how long is left until a deadline typed as free text.
//
// Two calculators are provided. The library one uses time.Time and real calendar
// arithmetic. The manual one counts days itself with a fixed month table and a coarse
// leap-day term, and drifts by a day around February of leap years.
package deadline

import (
	"fmt"
	"strings"
	"time"

	"sportzone-booking/errors"
)

const Usage = "DD/MM/YYYY HH:MM or YYYY-MM-DD HH:MM"

// layouts are tried in order; the first that parses wins.
var layouts = []string{
	"2/1/2006 15:04",
	"2006-1-2 15:04",
	"2-1-2006 15:04",
}

// Remaining is a duration split into whole days, hours and minutes.
// Days carries the sign: a deadline one hour in the past is -1 days, 23 hours.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
}

func (r Remaining) String() string {
	return fmt.Sprintf("Time remaining: %d days, %d hours, %d minutes", r.Days, r.Hours, r.Minutes)
}

// Parse reads a deadline in the given location.
func Parse(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, use %s", errors.ErrInvalidDateFormat, text, Usage)
}

// TimeRemaining parses text and measures it against now with calendar arithmetic.
// Both sides are compared as wall clocks, so a DST change in between does not shift
// the result by an hour.
func TimeRemaining(text string, now time.Time) (Remaining, error) {
	target, err := Parse(text, time.UTC)
	if err != nil {
		return Remaining{}, err
	}
	return Split(target.Sub(wallClock(now))), nil
}

// wallClock keeps the reading of t and drops its zone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Split breaks d into days, hours and minutes. Sub-second and sub-minute parts are
// dropped, and days are floored so that hours and minutes are never negative.
func Split(d time.Duration) Remaining {
	seconds := int64(d / time.Second)
	if d%time.Second < 0 {
		seconds--
	}
	return splitSeconds(seconds)
}

func splitSeconds(seconds int64) Remaining {
	days := floorDiv(seconds, secondsPerDay)
	rest := seconds - days*secondsPerDay
	return Remaining{
		Days:    days,
		Hours:   rest / secondsPerHour,
		Minutes: rest % secondsPerHour / secondsPerMinute,
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
