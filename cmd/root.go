package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tiliavir/ride-ledger/internal/config"
	"github.com/Tiliavir/ride-ledger/internal/ledger"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/storage"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// app is the wiring shared by every command. It is built in
// PersistentPreRunE and released by Execute.
type app struct {
	cfg     config.Config
	log     *applog.Logger
	repo    *storage.Repository
	svc     *ledger.Service
	clock   timecalc.Clock
	cleanup storage.CleanupFunc
}

var (
	cfgFile string
	v       = viper.New()
	current *app

	// clock is swapped in tests.
	clock timecalc.Clock = timecalc.SystemClock{}
)

var rootCmd = &cobra.Command{
	Use:   "rl",
	Short: "Ride Ledger – earnings, expenses and shifts for ride-hailing drivers",
	Long: `rl is a single-binary ledger for gig drivers. It records gains, expenses
and work shifts, and reports profit per hour, per km and per trip.
Data is stored in ~/.rl/ as human-readable JSON by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		var uerr *ledger.UserError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ~/.rl/config.yaml)")
	pf.String("data-dir", "", "Directory holding the ledger data")
	pf.String("backend", "", "Storage backend: file, sqlite, memory")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text, json")

	_ = v.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = v.BindPFlag("backend", pf.Lookup("backend"))
	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))

	rootCmd.AddCommand(gainCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(fuelCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	// .env is optional.
	_ = godotenv.Load()

	boot, err := applog.Setup(applog.Config{Level: "warn", Component: applog.ComponentConfig}, os.Stderr)
	if err != nil {
		return err
	}
	if err := config.Init(v, cfgFile, boot); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := applog.Setup(applog.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, os.Stderr)
	if err != nil {
		return err
	}
	applog.SetDefault(logger)

	kv, cleanup, err := storage.Open(cfg.StorageOptions(), logger.WithComponent(applog.ComponentStorage))
	if err != nil {
		return err
	}
	repo := storage.NewRepository(kv, logger)
	current = &app{
		cfg:     cfg,
		log:     logger,
		repo:    repo,
		svc:     ledger.NewService(repo, clock, logger),
		clock:   clock,
		cleanup: cleanup,
	}
	logger.Debug("ready", applog.FieldBackend, cfg.Backend, applog.FieldOperation, cmd.CommandPath())
	return nil
}

func teardown() {
	if current == nil {
		return
	}
	if err := current.cleanup(); err != nil {
		current.log.Warn("cleanup failed", applog.FieldError, err)
	}
	current = nil
}
