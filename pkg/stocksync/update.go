package stocksync

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/parser"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/reconcile"
)

// Update opens the workbook at path, copies the supplier metrics of the
// newest dated sheet into the target sheet and saves the workbook. Nothing
// is written to disk unless every step before saving succeeded.
func Update(ctx context.Context, path string, opts Options) (*models.Report, error) {
	log := opts.logger()
	if err := opts.Validate(); err != nil {
		return nil, NewUpdateError("options", err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewUpdateError("open", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return nil, NewUpdateError("open", err)
	}

	log.Info().Str("path", path).Msg("opening workbook")
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewUpdateError("open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Select the newest dated sheet
	year := opts.year()
	source, err := parser.SelectLatest(f.GetSheetList(), year)
	if err != nil {
		return nil, NewUpdateError("select", err)
	}
	date, _ := parser.ParseDateLabel(source, year)
	log.Info().Str("sheet", source).Str("date", date.Format("2006-01-02")).Msg("latest raw data sheet")

	// Extract supplier rows
	records, warnings, err := parser.ExtractFromFile(f, parser.ExtractSpec{
		Sheet:          source,
		Supplier:       opts.Supplier,
		SupplierColumn: opts.SupplierColumn,
		ItemCodeColumn: opts.ItemCodeColumn,
		Columns:        opts.SourceColumns,
	})
	if err != nil {
		return nil, NewUpdateError("extract", err)
	}
	for _, w := range warnings {
		log.Warn().Str("kind", string(w.Kind)).Str("sheet", w.Sheet).Msg(w.Message)
	}
	log.Info().Str("supplier", opts.Supplier).Int("records", len(records)).Msg("supplier rows extracted")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Merge into the supplier sheet
	target, err := parser.OpenSheet(f, opts.TargetSheet)
	if err != nil {
		return nil, NewUpdateError("reconcile", err)
	}
	rec, err := reconcile.New(opts.Layout, reconcile.WithLogger(log))
	if err != nil {
		return nil, NewUpdateError("reconcile", err)
	}
	report, err := rec.Reconcile(records, target)
	if err != nil {
		return nil, NewUpdateError("reconcile", err)
	}
	report.SourceSheet = source
	report.Supplier = opts.Supplier
	report.Warnings = append(warnings, report.Warnings...)

	log.Info().
		Str("sheet", opts.TargetSheet).
		Int("matched", report.MatchedCount).
		Int("cells", report.UpdatedCells).
		Msg("supplier sheet updated")
	if n := len(report.NewItemCodes); n > 0 {
		log.Warn().Int("count", n).Strs("item_codes", report.NewItemCodes).Msg("items missing from supplier sheet")
	}

	if opts.DryRun {
		log.Info().Msg("dry run, workbook not saved")
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Persist
	if opts.ShouldBackup() {
		backup := BackupPath(path, opts.now())
		if err := copyFile(path, backup); err != nil {
			return nil, NewUpdateError("backup", err)
		}
		report.BackupPath = backup
		log.Info().Str("path", backup).Msg("backup written")
	}

	if err := f.Save(); err != nil {
		return nil, NewUpdateError("save", err)
	}
	report.Saved = true
	log.Info().Str("path", path).Msg("workbook saved")

	return report, nil
}
