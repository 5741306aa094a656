package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/ledger"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/period"
	"github.com/Tiliavir/ride-ledger/internal/stats"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	shiftDate   string
	shiftStart  string
	shiftEnd    string
	shiftPauses []string
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Track work shifts",
}

var shiftAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a finished shift",
	Example: `  rl shift add --date 2026-03-04 --start 19:00 --end 02:30 --pause 22:00-22:40`,
	Args: cobra.NoArgs,
	RunE: runShiftAdd,
}

var shiftStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a live shift now",
	Args:  cobra.NoArgs,
	RunE:  runShiftStart,
}

var shiftPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running shift",
	Args:  cobra.NoArgs,
	RunE:  runShiftPause,
}

var shiftResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the paused shift",
	Args:  cobra.NoArgs,
	RunE:  runShiftResume,
}

var shiftStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running shift",
	Args:  cobra.NoArgs,
	RunE:  runShiftStop,
}

var shiftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running shift",
	Args:  cobra.NoArgs,
	RunE:  runShiftStatus,
}

func init() {
	shiftAddCmd.Flags().StringVar(&shiftDate, "date", "", "Shift date (YYYY-MM-DD)")
	shiftAddCmd.Flags().StringVar(&shiftStart, "start", "", "Start time (HH:MM)")
	shiftAddCmd.Flags().StringVar(&shiftEnd, "end", "", "End time (HH:MM), may be after midnight")
	shiftAddCmd.Flags().StringArrayVar(&shiftPauses, "pause", nil, "Pause as HH:MM-HH:MM, repeatable")

	shiftCmd.AddCommand(shiftAddCmd)
	shiftCmd.AddCommand(shiftStartCmd)
	shiftCmd.AddCommand(shiftPauseCmd)
	shiftCmd.AddCommand(shiftResumeCmd)
	shiftCmd.AddCommand(shiftStopCmd)
	shiftCmd.AddCommand(shiftStatusCmd)
}

func runShiftAdd(cmd *cobra.Command, _ []string) error {
	in := ledger.ShiftInput{Date: shiftDate, Start: shiftStart, End: shiftEnd}
	for _, p := range shiftPauses {
		start, end, err := parsePause(p)
		if err != nil {
			return err
		}
		in.Pauses = append(in.Pauses, ledger.PauseInput{Start: start, End: end})
	}

	s, err := current.svc.AddShift(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded shift %s: %s - %s, worked %s\n",
		s.ID, naive(s.Start), naive(*s.End), timecalc.FormatDuration(s.NetDuration()))
	return nil
}

func runShiftStart(cmd *cobra.Command, _ []string) error {
	s, err := current.svc.StartShift(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started shift %s at %s\n", s.ID, s.Start.Format("15:04:05"))
	return nil
}

func runShiftPause(cmd *cobra.Command, _ []string) error {
	s, err := current.svc.PauseShift(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Paused shift %s. Worked so far: %s\n", s.ID, formatElapsed(worked(s)))
	return nil
}

func runShiftResume(cmd *cobra.Command, _ []string) error {
	s, err := current.svc.ResumeShift(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Resumed shift %s after %s of pauses\n", s.ID, formatElapsed(int64(s.PauseDuration().Seconds())))
	return nil
}

func runShiftStop(cmd *cobra.Command, _ []string) error {
	s, err := current.svc.StopShift(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped shift %s. Worked: %s\n", s.ID, formatElapsed(int64(s.NetDuration().Seconds())))
	return nil
}

func runShiftStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	active, err := current.svc.ActiveShift(cmd.Context())
	if err != nil {
		return err
	}

	if active != nil {
		state := "Running"
		if active.OpenPause() != nil {
			state = "Paused"
		}
		fmt.Fprintf(out, "%s:\n", state)
		fmt.Fprintf(out, "  Shift: %s\n", active.ID)
		fmt.Fprintf(out, "  Since: %s\n", active.Start.Format("15:04"))
		fmt.Fprintf(out, "  Worked: %s\n", timecalc.FormatDurationHHMMSS(time.Duration(worked(*active))*time.Second))
		if len(active.Pauses) > 0 {
			fmt.Fprintf(out, "  Pauses: %d\n", len(active.Pauses))
		}
		return nil
	}

	// Idle: show today's total.
	shifts, err := current.repo.Shifts(cmd.Context())
	if err != nil {
		return err
	}
	today := stats.FilterShifts(shifts, period.Resolve(model.Filter{Period: model.PeriodToday}, current.clock))
	var total time.Duration
	for _, s := range today {
		total += s.NetDuration()
	}

	fmt.Fprintln(out, "No active shift.")
	fmt.Fprintf(out, "Today: %s worked.\n", timecalc.FormatDuration(total))
	return nil
}

// worked is the net time of a shift that may still be running, in seconds.
// Open pauses and an open end are measured against the clock.
func worked(s model.Shift) int64 {
	now := timecalc.ToNaiveUTC(current.clock.Now())
	closed := s
	if closed.End == nil {
		closed.End = &now
	}
	closed.Pauses = make([]model.Pause, len(s.Pauses))
	for i, p := range s.Pauses {
		closed.Pauses[i] = p
		if p.End == nil {
			closed.Pauses[i].End = &now
		}
	}
	return int64(closed.NetDuration().Seconds())
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
