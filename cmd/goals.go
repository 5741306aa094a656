package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/ledger"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	goalsProfit  string
	goalsRevenue string
	goalsClear   bool
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or set daily, weekly and monthly goals",
	Args:  cobra.NoArgs,
	RunE:  runGoalsShow,
}

var goalsSetCmd = &cobra.Command{
	Use:   "set <daily|weekly|monthly>",
	Short: "Set the profit and revenue targets of a bucket",
	Example: `  rl goals set daily --profit 250 --revenue 400
  rl goals set weekly --clear`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"daily", "weekly", "monthly"},
	RunE:      runGoalsSet,
}

func init() {
	goalsSetCmd.Flags().StringVar(&goalsProfit, "profit", "", "Profit target")
	goalsSetCmd.Flags().StringVar(&goalsRevenue, "revenue", "", "Revenue target")
	goalsSetCmd.Flags().BoolVar(&goalsClear, "clear", false, "Remove both targets of the bucket")
	goalsCmd.AddCommand(goalsSetCmd)
}

func runGoalsShow(cmd *cobra.Command, _ []string) error {
	g, err := current.svc.Goals(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, b := range []model.Bucket{model.BucketDaily, model.BucketWeekly, model.BucketMonthly} {
		t, _ := g.For(b)
		fmt.Fprintf(out, "%-8s profit %-14s revenue %s\n", b, targetString(t.Profit), targetString(t.Revenue))
	}
	return nil
}

func runGoalsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	g, err := current.svc.Goals(ctx)
	if err != nil {
		return err
	}

	var t *model.Target
	switch model.Bucket(strings.ToLower(args[0])) {
	case model.BucketDaily:
		t = &g.Daily
	case model.BucketWeekly:
		t = &g.Weekly
	case model.BucketMonthly:
		t = &g.Monthly
	default:
		return fmt.Errorf("unknown goal bucket %q: use daily, weekly or monthly", args[0])
	}

	if goalsClear {
		*t = model.Target{}
	}
	if goalsProfit != "" {
		if t.Profit, err = goalAmount(goalsProfit); err != nil {
			return err
		}
	}
	if goalsRevenue != "" {
		if t.Revenue, err = goalAmount(goalsRevenue); err != nil {
			return err
		}
	}

	if err := current.svc.SetGoals(ctx, g); err != nil {
		return err
	}
	return runGoalsShow(cmd, nil)
}

func goalAmount(s string) (*decimal.Decimal, error) {
	d, err := ledger.ParseAmount(s)
	if err != nil {
		return nil, ledger.NewUserError("Could not save goals", err)
	}
	return &d, nil
}

func targetString(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return timecalc.Money(*d)
}
