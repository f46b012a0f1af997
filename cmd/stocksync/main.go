// Package main provides the CLI entry point for stocksync.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji3/stocksync-go/pkg/stocksync"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/config"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/logging"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
)

// defaultWorkbook is used when no path is given.
const defaultWorkbook = "재고관리.xlsx"

var (
	configPath  string
	supplier    string
	targetSheet string
	year        int
	noBackup    bool
	dryRun      bool
	logDir      string
	showNew     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stocksync [workbook.xlsx]",
		Short: "Update a supplier sheet from the latest dated raw data sheet",
		Long: `stocksync finds the newest MMDD raw data sheet in an inventory workbook,
takes the rows of one supplier and copies their sales, stock and shippable
quantities into the supplier sheet by item code. Item codes missing from the
supplier sheet are reported, not added.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: stocksync.toml beside the executable)")
	rootCmd.Flags().StringVar(&supplier, "supplier", "", "Supplier code (overrides config)")
	rootCmd.Flags().StringVar(&targetSheet, "target-sheet", "", "Supplier sheet name (overrides config)")
	rootCmd.Flags().IntVar(&year, "year", 0, "Year for MMDD sheet names (default: current year)")
	rootCmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not write a backup copy before saving")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile without saving the workbook")
	rootCmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for update_log_YYYYMMDD.txt (default: workbook directory)")
	rootCmd.Flags().IntVar(&showNew, "show-new", -1, "Number of new item codes to print (default from config)")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath, err := resolveWorkbook(args)
	if err != nil {
		return err
	}

	// The run log opens first so every later failure reaches it.
	cfg, cfgErr := config.Load(configPath)
	if cfgErr == nil {
		applyFlags(cmd, cfg)
	}
	now := time.Now()
	runLog, err := logging.OpenRunLog(logDirFor(cmd, cfg, inputPath), now, logging.ConsoleOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer runLog.Close()

	fail := func(err error) error {
		runLog.Fatal(err)
		return err
	}

	if cfgErr != nil {
		return fail(cfgErr)
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "usage:\n  %s\n\n", cmd.UseLine())
		return fail(fmt.Errorf("file not found: %s", inputPath))
	}

	opts, err := cfg.Options()
	if err != nil {
		return fail(fmt.Errorf("invalid config: %w", err))
	}
	opts.ReferenceYear = year
	opts.DryRun = dryRun

	logging.SetDefault(runLog.Logger)
	logger := logging.Default()
	opts.Now = func() time.Time { return now }

	logger.Info().Str("path", inputPath).Str("supplier", opts.Supplier).Msg("stocksync started")

	report, err := stocksync.Update(context.Background(), inputPath, opts)
	if err != nil {
		return fail(err)
	}

	printReport(cmd.OutOrStdout(), report, cfg.Run.ShowNewItems)
	logger.Info().Str("log", runLog.Path).Msg("stocksync finished")
	return nil
}

// logDirFor picks the run log directory: --log-dir, then the config, then
// the workbook directory. cfg is nil when the config failed to load.
func logDirFor(cmd *cobra.Command, cfg *config.AppConfig, inputPath string) string {
	if cmd.Flags().Changed("log-dir") && logDir != "" {
		return logDir
	}
	if cfg != nil && cfg.Run.LogDir != "" {
		return cfg.Run.LogDir
	}
	return filepath.Dir(inputPath)
}

func resolveWorkbook(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	exeDir, err := config.GetExeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(exeDir, defaultWorkbook), nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.AppConfig) {
	flags := cmd.Flags()
	if flags.Changed("supplier") {
		cfg.Supplier.Code = supplier
	}
	if flags.Changed("target-sheet") {
		cfg.Target.Sheet = targetSheet
	}
	if noBackup {
		cfg.Run.Backup = false
	}
	if flags.Changed("log-dir") {
		cfg.Run.LogDir = logDir
	}
	if flags.Changed("show-new") {
		cfg.Run.ShowNewItems = showNew
	}
}

func printReport(w io.Writer, report *models.Report, limit int) {
	fmt.Fprintf(w, "source sheet:  %s\n", report.SourceSheet)
	fmt.Fprintf(w, "target sheet:  %s\n", report.TargetSheet)
	fmt.Fprintf(w, "extracted:     %d\n", report.Extracted)
	fmt.Fprintf(w, "updated:       %d items (%d cells)\n", report.MatchedCount, report.UpdatedCells)

	if len(report.NewItemCodes) > 0 {
		shown, rest := report.Preview(limit)
		fmt.Fprintf(w, "new items:     %d\n", len(report.NewItemCodes))
		for _, code := range shown {
			fmt.Fprintf(w, "   - %s\n", code)
		}
		if rest > 0 {
			fmt.Fprintf(w, "   ... and %d more\n", rest)
		}
	}

	for _, warn := range report.Warnings {
		if warn.Kind == models.WarnUnmatchedItem {
			continue
		}
		fmt.Fprintf(w, "warning:       %s\n", warn)
	}

	if report.BackupPath != "" {
		fmt.Fprintf(w, "backup:        %s\n", report.BackupPath)
	}
	if !report.Saved {
		fmt.Fprintln(w, "workbook not saved (dry run)")
	}
}
