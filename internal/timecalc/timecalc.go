package timecalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NaiveLayout is the stored form of every timestamp: wall-clock fields
// encoded as UTC with millisecond precision.
const NaiveLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-date form used for custom ranges and input.
const DateLayout = "2006-01-02"

// GenerateID creates a unique record ID based on timestamp and random suffix.
func GenerateID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", t.Format("20060102-150405"), suffix)
}

// ToNaiveUTC copies the wall-clock fields of t into a UTC time, truncated to
// milliseconds. The result is a carrier for local fields, not a real instant.
func ToNaiveUTC(t time.Time) time.Time {
	ms := t.Nanosecond() / int(time.Millisecond) * int(time.Millisecond)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), ms, time.UTC)
}

// ToNaiveUTCISOString encodes the wall-clock fields of t as an ISO-8601 string
// with a Z suffix, e.g. "2026-02-27T08:32:10.000Z".
func ToNaiveUTCISOString(t time.Time) string {
	return ToNaiveUTC(t).Format(NaiveLayout)
}

// ParseNaiveUTC parses a stored timestamp and returns it in UTC.
func ParseNaiveUTC(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDateFromNaiveUTC returns "DD/MM/YYYY" taken straight from the date
// portion of the string. Malformed input yields "".
func FormatDateFromNaiveUTC(iso string) string {
	datePart, _, ok := strings.Cut(iso, "T")
	if !ok {
		return ""
	}
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormatTimeFromNaiveUTC returns "HH:mm" from the time portion of the string.
// Malformed input yields "".
func FormatTimeFromNaiveUTC(iso string) string {
	_, timePart, ok := strings.Cut(iso, "T")
	if !ok {
		return ""
	}
	if len(timePart) < 5 {
		return timePart
	}
	return timePart[:5]
}

// LocalDateISOString returns the calendar date of t as "YYYY-MM-DD" without
// any zone conversion.
func LocalDateISOString(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// MonthRange returns the first and last instant of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first, last
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00.000 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the same day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
