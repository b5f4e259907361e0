package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("timestamp cannot be parsed")

// ParseError reports a timestamp or numeric field that could not be interpreted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Local layouts carry no offset and are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without an offset are
// interpreted in loc; values with an offset keep it.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, &ParseError{Value: value, Err: errors.New("empty timestamp")}
	}

	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: value, Err: errors.New("unsupported timestamp format")}
}

// MinutesBetween returns end-start in whole minutes, rounded to the nearest minute.
func MinutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// ElapsedMinutes parses both timestamps in the local zone and returns the
// elapsed minutes between them. end >= start is the caller's responsibility.
func ElapsedMinutes(start, end string) (int, error) {
	s, err := ParseTimestamp(start, time.Local)
	if err != nil {
		return 0, withField(err, "start")
	}
	e, err := ParseTimestamp(end, time.Local)
	if err != nil {
		return 0, withField(err, "end")
	}
	return MinutesBetween(s, e), nil
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether value falls on now's calendar day.
func IsToday(value string, now time.Time) (bool, error) {
	t, err := ParseTimestamp(value, now.Location())
	if err != nil {
		return false, err
	}
	return SameDay(t, now), nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatLocal formats t in the offset-less layout used by stored timestamps.
func FormatLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

func withField(err error, field string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return &ParseError{Field: field, Value: pe.Value, Err: pe.Err}
	}
	return err
}
