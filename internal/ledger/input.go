package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// GainInput is a gain as typed by the user. A zero Date means now.
type GainInput struct {
	Date        time.Time
	Amount      string
	Platform    model.Platform
	TripCount   *int
	IsReward    bool
	Description string
}

// ExpenseInput is a non-fuel expense.
type ExpenseInput struct {
	Date        time.Time
	Amount      string
	Category    model.Category
	Description string
}

// FuelInput is a refuel. Its amount is derived from the figures.
type FuelInput struct {
	Date           time.Time
	FuelType       model.FuelType
	PricePerLiter  string
	AvgConsumption string
	DistanceDriven string
	Description    string
}

// ShiftInput is a completed shift entered after the fact. Date is
// "YYYY-MM-DD", all times are "HH:mm" on that date and may cross midnight.
type ShiftInput struct {
	Date   string
	Start  string
	End    string
	Pauses []PauseInput
}

// PauseInput is one break of a ShiftInput.
type PauseInput struct {
	Start string
	End   string
}

// ParseAmount accepts "1234.56", "1234,56" and "1.234,56".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

func positive(s string) (decimal.Decimal, bool) {
	d, err := ParseAmount(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

func (in ShiftInput) build() (model.Shift, error) {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Start) == "" || strings.TrimSpace(in.End) == "" {
		return model.Shift{}, ErrIncompleteShift
	}
	day, err := time.Parse(timecalc.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return model.Shift{}, fmt.Errorf("%w: date %q", ErrIncompleteShift, in.Date)
	}
	clock := func(s string) (time.Time, error) {
		hm, err := time.Parse("15:04", strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: time %q", ErrIncompleteShift, s)
		}
		return day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), nil
	}

	start, err := clock(in.Start)
	if err != nil {
		return model.Shift{}, err
	}
	end, err := clock(in.End)
	if err != nil {
		return model.Shift{}, err
	}
	shift := model.Shift{Start: start, End: &end, Pauses: []model.Pause{}}

	for _, p := range in.Pauses {
		if strings.TrimSpace(p.Start) == "" && strings.TrimSpace(p.End) == "" {
			continue
		}
		ps, err := clock(p.Start)
		if err != nil {
			return model.Shift{}, err
		}
		pe, err := clock(p.End)
		if err != nil {
			return model.Shift{}, err
		}
		shift.Pauses = append(shift.Pauses, model.Pause{Start: ps, End: &pe})
	}
	shift.AdjustRollover()
	return shift, nil
}
