package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/backup"
	"github.com/Tiliavir/ride-ledger/internal/ledger"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save or restore a full JSON snapshot",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every entry, shift and goal to a snapshot file",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a snapshot; nothing changes if the file is invalid",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Output file, \"-\" for stdout (default rl-backup-<date>.json)")
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	log := current.log.WithComponent(applog.ComponentBackup)

	var w io.Writer = cmd.OutOrStdout()
	path := backupOutput
	if path != "-" {
		if path == "" {
			path = "rl-backup-" + timecalc.LocalDateISOString(current.clock.Now()) + ".json"
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	snap, err := backup.Export(cmd.Context(), current.repo, w)
	if err != nil {
		return err
	}
	log.Info("backup written", applog.FieldOperation, applog.OpExport, applog.FieldPath, path)
	if path != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d entries and %d shifts to %s\n", len(snap.Entries), len(snap.Shifts), path)
	}
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	snap, err := backup.Import(cmd.Context(), current.repo, f)
	if err != nil {
		if errors.Is(err, backup.ErrInvalidSnapshot) {
			return ledger.NewUserError("Import aborted, existing data left untouched", err)
		}
		return err
	}
	current.log.WithComponent(applog.ComponentBackup).Info("backup restored",
		applog.FieldOperation, applog.OpImport, applog.FieldPath, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d entries and %d shifts from %s\n", len(snap.Entries), len(snap.Shifts), args[0])
	return nil
}
