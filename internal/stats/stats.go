// Package stats aggregates entries and shifts into totals, rates and insights.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/period"
)

// Rates expresses revenue, expenses and profit against one denominator.
type Rates struct {
	Revenue  decimal.Decimal `json:"revenue" yaml:"revenue"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Profit   decimal.Decimal `json:"profit" yaml:"profit"`
}

// Summary is the aggregate view of a filtered set of records.
type Summary struct {
	Revenue       decimal.Decimal `json:"revenue" yaml:"revenue"`
	Expenses      decimal.Decimal `json:"expenses" yaml:"expenses"`
	Profit        decimal.Decimal `json:"profit" yaml:"profit"`
	TotalDuration time.Duration   `json:"-" yaml:"-"`
	DurationMs    int64           `json:"totalDurationMs" yaml:"total_duration_ms"`
	Hours         decimal.Decimal `json:"hours" yaml:"hours"`
	Kilometers    decimal.Decimal `json:"kilometers" yaml:"kilometers"`
	Trips         int             `json:"trips" yaml:"trips"`

	PerHour Rates `json:"perHour" yaml:"per_hour"`
	PerKm   Rates `json:"perKm" yaml:"per_km"`
	PerTrip Rates `json:"perTrip" yaml:"per_trip"`

	// FuelEfficiency is km per liter by fuel type, for fuel types present.
	FuelEfficiency map[model.FuelType]decimal.Decimal `json:"fuelEfficiency" yaml:"fuel_efficiency"`

	GainCount    int `json:"gainCount" yaml:"gain_count"`
	ExpenseCount int `json:"expenseCount" yaml:"expense_count"`
	ShiftCount   int `json:"shiftCount" yaml:"shift_count"`
}

// FilterEntries keeps entries whose date lies in r. Order is preserved.
func FilterEntries(entries []model.Entry, r period.Range) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Base().Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterShifts keeps shifts whose start lies in r. Order is preserved.
func FilterShifts(shifts []model.Shift, r period.Range) []model.Shift {
	out := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		if r.Contains(s.Start) {
			out = append(out, s)
		}
	}
	return out
}

// Summarize computes totals and rates. Callers filter first.
func Summarize(entries []model.Entry, shifts []model.Shift) Summary {
	s := Summary{FuelEfficiency: map[model.FuelType]decimal.Decimal{}}

	type fuelAcc struct{ distance, liters decimal.Decimal }
	fuel := map[model.FuelType]*fuelAcc{}

	for _, e := range entries {
		switch v := e.(type) {
		case *model.Gain:
			s.GainCount++
			s.Revenue = s.Revenue.Add(v.Amount)
			s.Trips += v.Trips()
		case *model.Expense:
			s.ExpenseCount++
			s.Expenses = s.Expenses.Add(v.Amount)
			if v.Category != model.CategoryFuel || v.Fuel == nil {
				continue
			}
			s.Kilometers = s.Kilometers.Add(v.Fuel.DistanceDriven)
			acc, ok := fuel[v.Fuel.FuelType]
			if !ok {
				acc = &fuelAcc{}
				fuel[v.Fuel.FuelType] = acc
			}
			acc.distance = acc.distance.Add(v.Fuel.DistanceDriven)
			acc.liters = acc.liters.Add(v.Fuel.Liters())
		}
	}
	s.Profit = s.Revenue.Sub(s.Expenses)

	for i := range shifts {
		s.ShiftCount++
		s.TotalDuration += shifts[i].Duration(true)
	}
	s.DurationMs = s.TotalDuration.Milliseconds()
	s.Hours = decimal.NewFromInt(s.TotalDuration.Milliseconds()).Div(decimal.NewFromInt(int64(time.Hour / time.Millisecond)))

	s.PerHour = s.rates(s.Hours)
	s.PerKm = s.rates(s.Kilometers)
	s.PerTrip = s.rates(decimal.NewFromInt(int64(s.Trips)))

	for ft, acc := range fuel {
		s.FuelEfficiency[ft] = safeDiv(acc.distance, acc.liters)
	}
	return s
}

func (s Summary) rates(denominator decimal.Decimal) Rates {
	return Rates{
		Revenue:  safeDiv(s.Revenue, denominator),
		Expenses: safeDiv(s.Expenses, denominator),
		Profit:   safeDiv(s.Profit, denominator),
	}
}

func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if !d.IsPositive() {
		return decimal.Zero
	}
	return n.Div(d)
}
