package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/report"
)

var (
	reportPeriod periodFlags
	reportPDF    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the period report in the terminal or as a PDF",
	Example: `  rl report --period this_month
  rl report --from 2026-03-01 --to 2026-03-15 --pdf march.pdf`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportPeriod.register(reportCmd, model.PeriodThisWeek)
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "Write a PDF to this path instead of printing")
}

func runReport(cmd *cobra.Command, _ []string) error {
	f, err := reportPeriod.filter()
	if err != nil {
		return err
	}
	d, err := current.svc.Dashboard(cmd.Context(), f)
	if err != nil {
		return err
	}
	data := dashboardData(d)

	if reportPDF == "" {
		fmt.Fprint(cmd.OutOrStdout(), report.RenderText(data))
		return nil
	}

	file, err := os.Create(reportPDF)
	if err != nil {
		return fmt.Errorf("creating %s: %w", reportPDF, err)
	}
	if err := report.WritePDF(file, data); err != nil {
		_ = file.Close()
		_ = os.Remove(reportPDF)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", reportPDF, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPDF)
	return nil
}
