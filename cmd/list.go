package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var listPeriod periodFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries and shifts of a period",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listPeriod.register(listCmd, model.PeriodToday)
}

func runList(cmd *cobra.Command, _ []string) error {
	f, err := listPeriod.filter()
	if err != nil {
		return err
	}
	d, err := current.svc.Dashboard(cmd.Context(), f)
	if err != nil {
		return err
	}
	printList(cmd.OutOrStdout(), d.SortedEntries(), d.SortedShifts())
	return nil
}

// printList groups entries and shifts by day, newest first.
func printList(w io.Writer, entries []model.Entry, shifts []model.Shift) {
	if len(entries) == 0 && len(shifts) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	day := func(iso string) {
		d := timecalc.FormatDateFromNaiveUTC(iso)
		if d != currentDay {
			fmt.Fprintln(w, d)
			currentDay = d
		}
	}

	i, j := 0, 0
	for i < len(entries) || j < len(shifts) {
		takeEntry := j >= len(shifts) ||
			(i < len(entries) && !entries[i].Base().Date.Before(shifts[j].Start))
		if takeEntry {
			e := entries[i]
			i++
			iso := e.Base().Date.Format(timecalc.NaiveLayout)
			day(iso)
			fmt.Fprintf(w, "  %s  %-8s %12s  %s  [%s]\n",
				timecalc.FormatTimeFromNaiveUTC(iso), e.Type(), amountOf(e), titleOf(e), e.Base().ID)
			continue
		}

		s := shifts[j]
		j++
		iso := s.Start.Format(timecalc.NaiveLayout)
		day(iso)
		endStr := "ongoing"
		durStr := ""
		if s.End != nil {
			endStr = timecalc.FormatTimeFromNaiveUTC(s.End.Format(timecalc.NaiveLayout))
			if !timecalc.SameDay(s.Start, *s.End) {
				endStr += " (+1)"
			}
			durStr = fmt.Sprintf(" (%s)", timecalc.FormatDuration(s.NetDuration()))
		}
		fmt.Fprintf(w, "  %s  %-8s %s–%s%s  [%s]\n",
			timecalc.FormatTimeFromNaiveUTC(iso), "SHIFT", timecalc.FormatTimeFromNaiveUTC(iso), endStr, durStr, s.ID)
	}
}

func amountOf(e model.Entry) string {
	if e.Type() == model.EntryExpense {
		return timecalc.Money(e.Base().Amount.Neg())
	}
	return timecalc.Money(e.Base().Amount)
}

func titleOf(e model.Entry) string {
	var parts []string
	switch v := e.(type) {
	case *model.Gain:
		if v.Platform != "" {
			parts = append(parts, v.Platform.Label())
		}
		if v.IsReward {
			parts = append(parts, "reward")
		} else if v.TripCount != nil {
			parts = append(parts, fmt.Sprintf("%d trips", *v.TripCount))
		}
	case *model.Expense:
		parts = append(parts, v.Category.Label())
		if v.Fuel != nil {
			parts = append(parts, v.Fuel.FuelType.Label(), timecalc.Number(v.Fuel.DistanceDriven, 1)+" km")
		}
	}
	if d := e.Base().Description; d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, ", ")
}
