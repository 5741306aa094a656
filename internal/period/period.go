// Package period turns a filter into a concrete naive-UTC time range.
package period

import (
	"time"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// Epoch marks both bounds of an empty range.
var Epoch = time.Unix(0, 0).UTC()

// Range is an inclusive naive-UTC interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether r is the "matches nothing" range.
func (r Range) Empty() bool {
	return r.Start.Equal(Epoch) && r.End.Equal(Epoch)
}

// Contains reports whether t lies within [Start, End].
func (r Range) Contains(t time.Time) bool {
	if r.Empty() {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days is the span of the range rounded up to whole days.
func (r Range) Days() int {
	d := r.End.Sub(r.Start)
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Resolve computes the range selected by f relative to clock. Every bound is
// derived from the clock's wall-clock fields, so the result does not depend on
// the process time zone.
func Resolve(f model.Filter, clock timecalc.Clock) Range {
	now := timecalc.ToNaiveUTC(clock.Now())
	today := timecalc.StartOfDay(now)

	switch f.Period {
	case model.PeriodYesterday:
		return Range{Start: today.AddDate(0, 0, -1), End: today.Add(-time.Millisecond)}
	case model.PeriodThisWeek:
		start, end := timecalc.WeekRange(now)
		return Range{Start: start, End: end}
	case model.PeriodLast7Days:
		return Range{Start: today.AddDate(0, 0, -6), End: now}
	case model.PeriodThisMonth:
		start, end := timecalc.MonthRange(now)
		return Range{Start: start, End: end}
	case model.PeriodLast30Days:
		return Range{Start: today.AddDate(0, 0, -29), End: now}
	case model.PeriodAll:
		return Range{Start: Epoch, End: now}
	case model.PeriodCustom:
		return custom(f.CustomRange)
	default:
		return Range{Start: today, End: timecalc.EndOfDay(today)}
	}
}

func custom(dr model.DateRange) Range {
	start, err1 := time.Parse(timecalc.DateLayout, dr.Start)
	end, err2 := time.Parse(timecalc.DateLayout, dr.End)
	if err1 != nil || err2 != nil {
		return Range{Start: Epoch, End: Epoch}
	}
	return Range{Start: start, End: timecalc.EndOfDay(end)}
}
