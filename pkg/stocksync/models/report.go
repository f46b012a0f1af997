package models

import "fmt"

// WarningKind classifies a non-fatal condition met during a run.
type WarningKind string

const (
	// WarnMissingColumn marks a projected source column absent from the header.
	WarnMissingColumn WarningKind = "missing_column"
	// WarnUnmatchedItem marks a source item code with no row in the target sheet.
	WarnUnmatchedItem WarningKind = "unmatched_item"
	// WarnEmptyExtraction marks a source sheet without rows for the supplier.
	WarnEmptyExtraction WarningKind = "empty_extraction"
	// WarnUnparseableValue marks a non-numeric value in a metric column.
	WarnUnparseableValue WarningKind = "unparseable_value"
)

// Warning is a non-fatal condition. It never interrupts a run.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Sheet    string      `json:"sheet,omitempty"`
	Column   string      `json:"column,omitempty"`
	ItemCode string      `json:"item_code,omitempty"`
	Row      int         `json:"row,omitempty"`
	Message  string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Report summarises one reconciliation run.
type Report struct {
	// SourceSheet is the dated sheet the records came from.
	SourceSheet string `json:"source_sheet"`
	// TargetSheet is the supplier sheet that was updated.
	TargetSheet string `json:"target_sheet"`
	// Supplier is the supplier key used for filtering.
	Supplier string `json:"supplier"`
	// Extracted is the number of supplier records read from the source.
	Extracted int `json:"extracted"`
	// MatchedCount is the number of records that found a target row.
	MatchedCount int `json:"matched_count"`
	// UpdatedCells is the number of target cells overwritten.
	UpdatedCells int `json:"updated_cells"`
	// NewItemCodes lists unmatched source item codes in source order.
	NewItemCodes []string `json:"new_item_codes"`
	// Warnings holds every non-fatal condition in the order met.
	Warnings []Warning `json:"warnings,omitempty"`
	// Saved is true once the workbook was written back.
	Saved bool `json:"saved"`
	// BackupPath is the backup copy written before saving, if any.
	BackupPath string `json:"backup_path,omitempty"`
}

// Warn appends a warning.
func (r *Report) Warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// WarningsOf returns the warnings of one kind.
func (r *Report) WarningsOf(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Preview returns at most n new item codes and how many were left out.
func (r *Report) Preview(n int) ([]string, int) {
	if n < 0 || len(r.NewItemCodes) <= n {
		return r.NewItemCodes, 0
	}
	return r.NewItemCodes[:n], len(r.NewItemCodes) - n
}
