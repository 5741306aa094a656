// Package goal compares period results with the configured targets.
package goal

import (
	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/period"
	"github.com/Tiliavir/ride-ledger/internal/stats"
)

// Progress is the advance of a value toward a positive target.
type Progress struct {
	Current decimal.Decimal `json:"current" yaml:"current"`
	Target  decimal.Decimal `json:"target" yaml:"target"`
	// Percent is floored and may be negative or above 100.
	Percent int64 `json:"percent" yaml:"percent"`
	// Bar is Percent clamped to [0, 100].
	Bar int `json:"bar" yaml:"bar"`
}

// Evaluation is the goal state of one period.
type Evaluation struct {
	Bucket  model.Bucket `json:"bucket" yaml:"bucket"`
	Profit  *Progress    `json:"profit,omitempty" yaml:"profit,omitempty"`
	Revenue *Progress    `json:"revenue,omitempty" yaml:"revenue,omitempty"`
}

// BucketFor selects the goal bucket for a filter and its resolved range.
func BucketFor(f model.Filter, r period.Range) model.Bucket {
	switch f.Period {
	case model.PeriodToday, model.PeriodYesterday:
		return model.BucketDaily
	case model.PeriodThisWeek, model.PeriodLast7Days:
		return model.BucketWeekly
	case model.PeriodThisMonth, model.PeriodLast30Days:
		return model.BucketMonthly
	case model.PeriodCustom:
		// An unresolvable range is epoch..epoch, a zero-day span.
		if r.Days() <= 1 {
			return model.BucketDaily
		}
	}
	return model.BucketNone
}

// NewProgress returns nil unless target is set and positive.
func NewProgress(current decimal.Decimal, target *decimal.Decimal) *Progress {
	if target == nil || !target.IsPositive() {
		return nil
	}
	pct := current.Mul(decimal.NewFromInt(100)).Div(*target).Floor().IntPart()
	bar := pct
	if bar < 0 {
		bar = 0
	}
	if bar > 100 {
		bar = 100
	}
	return &Progress{Current: current, Target: *target, Percent: pct, Bar: int(bar)}
}

// Evaluate returns nil when the period has no goal bucket.
func Evaluate(f model.Filter, r period.Range, goals model.Goals, s stats.Summary) *Evaluation {
	bucket := BucketFor(f, r)
	target, ok := goals.For(bucket)
	if !ok {
		return nil
	}
	return &Evaluation{
		Bucket:  bucket,
		Profit:  NewProgress(s.Profit, target.Profit),
		Revenue: NewProgress(s.Revenue, target.Revenue),
	}
}
