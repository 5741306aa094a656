package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/ride-ledger/internal/goal"
	"github.com/Tiliavir/ride-ledger/internal/ledger"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/report"
	"github.com/Tiliavir/ride-ledger/internal/stats"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	summaryPeriod periodFlags
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, rates, goals and insights for a period",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryPeriod.register(summaryCmd, model.PeriodThisWeek)
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "md", "Output format: md, json, yaml")
}

// summaryDoc is the machine-readable summary.
type summaryDoc struct {
	Period   model.PeriodKey  `json:"period" yaml:"period"`
	From     string           `json:"from" yaml:"from"`
	To       string           `json:"to" yaml:"to"`
	Summary  stats.Summary    `json:"summary" yaml:"summary"`
	Goals    *goal.Evaluation `json:"goals,omitempty" yaml:"goals,omitempty"`
	Insights stats.Insights   `json:"insights" yaml:"insights"`
}

func newSummaryDoc(d ledger.Dashboard) summaryDoc {
	return summaryDoc{
		Period:   d.Filter.Period,
		From:     d.Range.Start.Format(timecalc.NaiveLayout),
		To:       d.Range.End.Format(timecalc.NaiveLayout),
		Summary:  d.Summary,
		Goals:    d.Goals,
		Insights: d.Insights,
	}
}

func runSummary(cmd *cobra.Command, _ []string) error {
	f, err := summaryPeriod.filter()
	if err != nil {
		return err
	}
	d, err := current.svc.Dashboard(cmd.Context(), f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch summaryFormat {
	case "json":
		data, err := json.MarshalIndent(newSummaryDoc(d), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(newSummaryDoc(d)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "md", "":
		return printSummary(out, d)
	default:
		return fmt.Errorf("unknown format %q: use md, json or yaml", summaryFormat)
	}
	return nil
}

func printSummary(w io.Writer, d ledger.Dashboard) error {
	data := dashboardData(d)
	fmt.Fprintf(w, "%s (%s)\n", data.PeriodLabel, data.RangeLabel())
	fmt.Fprintln(w, "--------------------------------")
	for _, kv := range data.Totals() {
		fmt.Fprintf(w, "%-20s%s\n", kv[0], kv[1])
	}
	fmt.Fprintln(w, "--------------------------------")

	if d.Goals != nil {
		if d.Goals.Profit != nil {
			if err := goalBar(w, "Profit goal", d.Goals.Profit); err != nil {
				return err
			}
		}
		if d.Goals.Revenue != nil {
			if err := goalBar(w, "Revenue goal", d.Goals.Revenue); err != nil {
				return err
			}
		}
	}
	for _, l := range data.FuelLines() {
		fmt.Fprintln(w, l)
	}
	for _, l := range data.InsightLines() {
		fmt.Fprintln(w, l)
	}
	return nil
}

// goalBar draws a static bar at the clamped percentage, followed by the
// unclamped figures.
func goalBar(w io.Writer, label string, p *goal.Progress) error {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(fmt.Sprintf("%-14s", label)),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetRenderBlankState(true),
	)
	if err := bar.Set(p.Bar); err != nil {
		return fmt.Errorf("drawing %s: %w", label, err)
	}
	if _, err := fmt.Fprintf(w, "  %d%% (%s of %s)\n", p.Percent, timecalc.Money(p.Current), timecalc.Money(p.Target)); err != nil {
		return err
	}
	return nil
}

// periodHeading names the period, with the ISO week for this_week.
func periodHeading(d ledger.Dashboard) string {
	label := periodLabel(d.Filter.Period)
	if d.Filter.Period == model.PeriodThisWeek && !d.Range.Empty() {
		label += " " + timecalc.ISOWeekLabel(d.Range.Start)
	}
	return label
}

// dashboardData adapts a dashboard for the report renderers.
func dashboardData(d ledger.Dashboard) report.Data {
	return report.Data{
		Title:       "Ride Ledger",
		PeriodLabel: periodHeading(d),
		Range:       d.Range,
		Summary:     d.Summary,
		Goals:       d.Goals,
		Insights:    d.Insights,
		Entries:     d.SortedEntries(),
		Shifts:      d.SortedShifts(),
		GeneratedAt: timecalc.ToNaiveUTC(current.clock.Now()),
	}
}
