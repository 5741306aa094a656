package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/ledger"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	gainPlatform string
	gainTrips    int
	gainReward   bool
	gainDate     string
	gainDesc     string
)

var gainCmd = &cobra.Command{
	Use:   "gain <amount>",
	Short: "Record a gain",
	Example: `  rl gain 182,50 --platform uber --trips 9
  rl gain 40 --platform 99 --reward --desc "weekly bonus"`,
	Args: cobra.ExactArgs(1),
	RunE: runGain,
}

func init() {
	gainCmd.Flags().StringVar(&gainPlatform, "platform", "", "Platform: uber, 99, particular")
	gainCmd.Flags().IntVar(&gainTrips, "trips", 0, "Number of trips")
	gainCmd.Flags().BoolVar(&gainReward, "reward", false, "Mark as a platform reward (no trips)")
	gainCmd.Flags().StringVar(&gainDate, "date", "", "When (YYYY-MM-DD or YYYY-MM-DDTHH:MM), default now")
	gainCmd.Flags().StringVar(&gainDesc, "desc", "", "Optional description")
}

func runGain(cmd *cobra.Command, args []string) error {
	platform, err := parsePlatform(gainPlatform)
	if err != nil {
		return err
	}
	when, err := parseWhen(gainDate, current.clock.Now())
	if err != nil {
		return err
	}
	in := ledger.GainInput{
		Date:        when,
		Amount:      args[0],
		Platform:    platform,
		IsReward:    gainReward,
		Description: gainDesc,
	}
	if cmd.Flags().Changed("trips") {
		trips := gainTrips
		in.TripCount = &trips
	}

	g, err := current.svc.AddGain(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded gain %s of %s on %s\n", g.ID, timecalc.Money(g.Amount), naive(g.Date))
	return nil
}
