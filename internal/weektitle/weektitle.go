// Package weektitle parses and builds week page titles such as
// "20210101〜20210107".
package weektitle

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Delimiter separates the begin and end dates of a week title
	Delimiter = "〜"

	// DateLayout is the YYYYMMDD layout used in titles and day records
	DateLayout = "20060102"
)

// Range is an inclusive range of calendar dates
type Range struct {
	Begin time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t lies within the range
func (r Range) Contains(t time.Time) bool {
	d := Civil(t)
	return !d.Before(r.Begin) && !d.After(r.End)
}

// Civil drops time of day and location, keeping the calendar date of t
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a strict 8 digit YYYYMMDD date
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: want %d digits", s, len(DateLayout))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("invalid date %q: non-digit %q", s, r)
		}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats the calendar date of t as YYYYMMDD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Parse extracts the date range from a week title. Anything that is not
// exactly two valid dates around a single delimiter, or whose begin date is
// after its end date, is not a week title.
func Parse(title string) (Range, bool) {
	parts := strings.Split(title, Delimiter)
	if len(parts) != 2 {
		return Range{}, false
	}

	begin, err := ParseDate(parts[0])
	if err != nil {
		return Range{}, false
	}
	end, err := ParseDate(parts[1])
	if err != nil {
		return Range{}, false
	}
	if begin.After(end) {
		return Range{}, false
	}

	return Range{Begin: begin, End: end}, true
}

// Matches reports whether title is a week title containing target
func Matches(title string, target time.Time) bool {
	r, ok := Parse(title)
	if !ok {
		return false
	}
	return r.Contains(target)
}

// Make builds the week title for the given range
func Make(begin, end time.Time) string {
	return FormatDate(begin) + Delimiter + FormatDate(end)
}

// ForWeek builds the title of the seven day week starting at begin
func ForWeek(begin time.Time) string {
	return Make(begin, begin.AddDate(0, 0, 6))
}
