package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/export"
	"github.com/Tiliavir/ride-ledger/internal/ledger"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	exportPeriod periodFlags
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries and shifts of a period as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportPeriod.register(exportCmd, model.PeriodAll)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, \"-\" for stdout (default rl-export-<date>.csv)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	f, err := exportPeriod.filter()
	if err != nil {
		return err
	}
	d, err := current.svc.Dashboard(cmd.Context(), f)
	if err != nil {
		return err
	}
	entries, shifts := d.SortedEntries(), d.SortedShifts()

	if exportOutput == "-" {
		if len(entries) == 0 && len(shifts) == 0 {
			return ledger.NewUserError("Nothing to export", export.ErrNothingToExport)
		}
		return export.WriteCSV(cmd.OutOrStdout(), entries, shifts)
	}

	path := exportOutput
	if path == "" {
		path = "rl-export-" + timecalc.LocalDateISOString(current.clock.Now()) + ".csv"
	}
	if err := export.WriteFile(path, entries, shifts); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return ledger.NewUserError("Nothing to export", err)
		}
		return err
	}
	current.log.WithComponent(applog.ComponentExport).Info("csv written",
		applog.FieldOperation, applog.OpExport, applog.FieldPath, path, applog.FieldCount, len(entries)+len(shifts))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries and %d shifts to %s\n", len(entries), len(shifts), path)
	return nil
}
