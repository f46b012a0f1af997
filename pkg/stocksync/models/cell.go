// Package models defines data structures shared by the sheet reader, the
// reconciler and the run orchestration.
package models

// CellRow represents a single non-blank row read from a worksheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based) to the raw cell value.
	C map[int]string `json:"c"`
}

// Value returns the raw value at col, or "" when the cell is empty.
func (r CellRow) Value(col int) string {
	if r.C == nil {
		return ""
	}
	return r.C[col]
}
