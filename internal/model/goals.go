package model

import "github.com/shopspring/decimal"

// Bucket selects which goal applies to a period.
type Bucket string

const (
	BucketNone    Bucket = ""
	BucketDaily   Bucket = "daily"
	BucketWeekly  Bucket = "weekly"
	BucketMonthly Bucket = "monthly"
)

// Target is an optional profit and revenue objective.
type Target struct {
	Profit  *decimal.Decimal `json:"profit,omitempty" yaml:"profit,omitempty"`
	Revenue *decimal.Decimal `json:"revenue,omitempty" yaml:"revenue,omitempty"`
}

// Goals holds the targets for each bucket. It is always replaced as a whole.
type Goals struct {
	Daily   Target `json:"daily" yaml:"daily"`
	Weekly  Target `json:"weekly" yaml:"weekly"`
	Monthly Target `json:"monthly" yaml:"monthly"`
}

// DefaultGoals has no targets set.
func DefaultGoals() Goals { return Goals{} }

// For returns the target of a bucket and false when the bucket is none.
func (g Goals) For(b Bucket) (Target, bool) {
	switch b {
	case BucketDaily:
		return g.Daily, true
	case BucketWeekly:
		return g.Weekly, true
	case BucketMonthly:
		return g.Monthly, true
	}
	return Target{}, false
}
