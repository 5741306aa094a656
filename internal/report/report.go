// Package report renders the summary of a period for the terminal and as a
// printable PDF. It only formats numbers computed elsewhere.
package report

import (
	"fmt"
	"time"

	"github.com/Tiliavir/ride-ledger/internal/goal"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/period"
	"github.com/Tiliavir/ride-ledger/internal/stats"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// Data is the input of every renderer. Entries and shifts are expected
// newest first.
type Data struct {
	Title       string
	PeriodLabel string
	Range       period.Range
	Summary     stats.Summary
	Goals       *goal.Evaluation
	Insights    stats.Insights
	Entries     []model.Entry
	Shifts      []model.Shift
	GeneratedAt time.Time
}

// Line is one transaction row.
type Line struct {
	Date   string
	Type   string
	Title  string
	Amount string
	Gain   bool
}

// Lines converts the entries into display rows.
func (d Data) Lines() []Line {
	out := make([]Line, 0, len(d.Entries))
	for _, e := range d.Entries {
		b := e.Base()
		iso := b.Date.Format(timecalc.NaiveLayout)
		l := Line{
			Date: timecalc.FormatDateFromNaiveUTC(iso) + " " + timecalc.FormatTimeFromNaiveUTC(iso),
			Type: string(e.Type()),
		}
		switch v := e.(type) {
		case *model.Gain:
			l.Gain = true
			l.Title = "Gain"
			if v.Platform != "" {
				l.Title = v.Platform.Label()
			}
			if v.IsReward {
				l.Title += " (reward)"
			}
			l.Amount = timecalc.Money(b.Amount)
		case *model.Expense:
			l.Title = v.Category.Label()
			if v.Fuel != nil {
				l.Title += " " + v.Fuel.FuelType.Label()
			}
			l.Amount = timecalc.Money(b.Amount.Neg())
		}
		if b.Description != "" {
			l.Title += " - " + b.Description
		}
		out = append(out, l)
	}
	return out
}

// RangeLabel renders the range as "DD/MM/YYYY - DD/MM/YYYY".
func (d Data) RangeLabel() string {
	if d.Range.Empty() {
		return "empty range"
	}
	start := timecalc.FormatDateFromNaiveUTC(d.Range.Start.Format(timecalc.NaiveLayout))
	end := timecalc.FormatDateFromNaiveUTC(d.Range.End.Format(timecalc.NaiveLayout))
	return start + " - " + end
}

// Totals are the executive figures as label/value pairs in display order.
func (d Data) Totals() [][2]string {
	s := d.Summary
	return [][2]string{
		{"Revenue", timecalc.Money(s.Revenue)},
		{"Expenses", timecalc.Money(s.Expenses)},
		{"Profit", timecalc.Money(s.Profit)},
		{"Hours worked", timecalc.FormatDurationHM(s.TotalDuration)},
		{"Kilometers", timecalc.Number(s.Kilometers, 1)},
		{"Trips", fmt.Sprintf("%d", s.Trips)},
		{"Profit / hour", timecalc.Money(s.PerHour.Profit)},
		{"Profit / km", timecalc.Money(s.PerKm.Profit)},
		{"Profit / trip", timecalc.Money(s.PerTrip.Profit)},
	}
}

// InsightLines describes the insights, one sentence each.
func (d Data) InsightLines() []string {
	ins := d.Insights
	na := "insufficient data"
	lines := make([]string, 0, 4)

	if w := ins.BestWeekday; w != nil {
		lines = append(lines, fmt.Sprintf("Best day: %s (%s average profit)", w.Weekday, timecalc.Money(w.AverageProfit)))
	} else {
		lines = append(lines, "Best day: "+na)
	}
	if p := ins.BestPlatform; p != nil {
		lines = append(lines, fmt.Sprintf("Best platform: %s (%s per trip)", p.Platform.Label(), timecalc.Money(p.RevenuePerTrip)))
	} else {
		lines = append(lines, "Best platform: "+na)
	}
	if f := ins.CheapestFuel; f != nil {
		lines = append(lines, fmt.Sprintf("Cheapest fuel: %s (%s per km)", f.FuelType.Label(), timecalc.Money(f.CostPerKm)))
	} else {
		lines = append(lines, "Cheapest fuel: "+na)
	}
	if p := ins.MostUsedPlatform; p != nil {
		lines = append(lines, fmt.Sprintf("Most used platform: %s (%d trips)", p.Platform.Label(), p.Trips))
	}
	return lines
}

// FuelLines lists fuel efficiency per fuel type in a fixed order.
func (d Data) FuelLines() []string {
	var lines []string
	for _, ft := range []model.FuelType{model.FuelGasoline, model.FuelEthanol} {
		if eff, ok := d.Summary.FuelEfficiency[ft]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s km/l", ft.Label(), timecalc.Number(eff, 2)))
		}
	}
	return lines
}

func goalLine(name string, p *goal.Progress) string {
	return fmt.Sprintf("%s goal: %d%% (%s of %s)", name, p.Percent, timecalc.Money(p.Current), timecalc.Money(p.Target))
}

// GoalLines lists the active goal progress, if any.
func (d Data) GoalLines() []string {
	if d.Goals == nil {
		return nil
	}
	var lines []string
	if d.Goals.Profit != nil {
		lines = append(lines, goalLine("Profit", d.Goals.Profit))
	}
	if d.Goals.Revenue != nil {
		lines = append(lines, goalLine("Revenue", d.Goals.Revenue))
	}
	return lines
}
