// Package reconcile merges supplier records into the rows of a supplier
// sheet by item code.
//
// A matched row only has the cells of present fields overwritten; absent
// source values never erase what the sheet already holds, so repeating a
// run with the same or partial data converges. Unmatched item codes are
// reported, never inserted.
package reconcile

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
)

// Reconciler applies records to a target sheet using a fixed layout.
type Reconciler struct {
	layout TargetLayout
	logger zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for per-item diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler after validating the layout.
func New(layout TargetLayout, opts ...Option) (*Reconciler, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	r := &Reconciler{
		layout: layout,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Reconcile is a convenience wrapper around New(layout).Reconcile.
func Reconcile(records []models.SourceRecord, target models.Sheet, layout TargetLayout) (*models.Report, error) {
	r, err := New(layout)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(records, target)
}

// Reconcile matches each record to the first target row carrying the same
// item code and overwrites the mapped cells of its present fields. The
// returned report lists unmatched codes in record order. Errors from the
// sheet abort the merge; cells written before the error stay written.
func (r *Reconciler) Reconcile(records []models.SourceRecord, target models.Sheet) (*models.Report, error) {
	report := &models.Report{
		TargetSheet:  target.Name(),
		Extracted:    len(records),
		NewItemCodes: []string{},
	}

	index, err := r.indexRows(target)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		row, ok := index[models.NormalizeKey(record.ItemCode)]
		if !ok {
			report.NewItemCodes = append(report.NewItemCodes, record.ItemCode)
			report.Warn(models.Warning{
				Kind:     models.WarnUnmatchedItem,
				Sheet:    target.Name(),
				ItemCode: record.ItemCode,
				Row:      record.R,
				Message:  fmt.Sprintf("item %s has no row in %s", record.ItemCode, target.Name()),
			})
			r.logger.Debug().Str("item_code", record.ItemCode).Msg("no matching row")
			continue
		}

		written, err := r.apply(record, target, row)
		report.UpdatedCells += written
		if err != nil {
			return nil, fmt.Errorf("failed to update item %s at row %d: %w", record.ItemCode, row, err)
		}
		report.MatchedCount++
		r.logger.Debug().
			Str("item_code", record.ItemCode).
			Int("row", row).
			Int("cells", written).
			Msg("row updated")
	}

	return report, nil
}

// indexRows maps item codes to the first row holding them, scanning from
// the row after the header block through the last populated row. Later
// duplicates are ignored, which is the same as a first-match linear scan.
func (r *Reconciler) indexRows(target models.Sheet) (map[string]int, error) {
	maxRow, err := target.MaxRow()
	if err != nil {
		return nil, fmt.Errorf("failed to size sheet %q: %w", target.Name(), err)
	}

	index := make(map[string]int)
	for row := r.layout.HeaderRows + 1; row <= maxRow; row++ {
		v, err := target.Cell(row, r.layout.ItemCodeColumn)
		if err != nil {
			return nil, fmt.Errorf("failed to read item code at row %d: %w", row, err)
		}
		code := models.NormalizeKey(v)
		if code == "" {
			continue
		}
		if _, dup := index[code]; !dup {
			index[code] = row
		}
	}
	return index, nil
}

// apply writes the present fields of record into row and returns the
// number of cells written.
func (r *Reconciler) apply(record models.SourceRecord, target models.Sheet, row int) (int, error) {
	written := 0
	for _, field := range models.Fields {
		v := record.Value(field)
		if !v.Valid {
			continue
		}
		if err := target.SetCell(row, r.layout.Columns[field], models.CellValue(v.Decimal)); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
