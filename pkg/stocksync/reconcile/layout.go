package reconcile

import (
	"errors"
	"fmt"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
)

// ErrInvalidLayout indicates a target layout that cannot be applied.
var ErrInvalidLayout = errors.New("invalid target layout")

// TargetLayout is the column contract of the supplier sheet. It is fixed
// configuration, not derived from header text, so a layout change in the
// workbook requires a matching change here.
type TargetLayout struct {
	// HeaderRows is the number of rows above the first item row.
	HeaderRows int
	// ItemCodeColumn is the 1-based column holding item codes.
	ItemCodeColumn int
	// Columns maps each tracked field to its 1-based destination column.
	Columns map[models.Field]int
}

// DefaultLayout returns the reference supplier sheet layout: a supplier
// info row and a header row, item codes in B, stock in G, sales in H to J
// and shippable quantity in S.
func DefaultLayout() TargetLayout {
	return TargetLayout{
		HeaderRows:     2,
		ItemCodeColumn: 2,
		Columns: map[models.Field]int{
			models.AggregateStock:      7,
			models.CurrentSales:        8,
			models.PrevSales:           9,
			models.TwoMonthsPriorSales: 10,
			models.Shippable:           19,
		},
	}
}

// Validate checks the layout for impossible or overlapping columns.
func (l TargetLayout) Validate() error {
	if l.HeaderRows < 0 {
		return fmt.Errorf("%w: header rows %d", ErrInvalidLayout, l.HeaderRows)
	}
	if l.ItemCodeColumn < 1 {
		return fmt.Errorf("%w: item code column %d", ErrInvalidLayout, l.ItemCodeColumn)
	}
	seen := map[int]models.Field{}
	for _, field := range models.Fields {
		col, ok := l.Columns[field]
		if !ok {
			return fmt.Errorf("%w: no column for %s", ErrInvalidLayout, field)
		}
		if col < 1 {
			return fmt.Errorf("%w: column %d for %s", ErrInvalidLayout, col, field)
		}
		if col == l.ItemCodeColumn {
			return fmt.Errorf("%w: %s would overwrite the item code column", ErrInvalidLayout, field)
		}
		if other, dup := seen[col]; dup {
			return fmt.Errorf("%w: %s and %s share column %d", ErrInvalidLayout, other, field, col)
		}
		seen[col] = field
	}
	return nil
}
