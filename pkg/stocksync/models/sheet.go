package models

import (
	"fmt"
	"strconv"
)

// Sheet is the cell storage of a single worksheet, addressed by 1-based
// row and column. Implementations must not insert or remove rows.
type Sheet interface {
	// Name is the worksheet name.
	Name() string
	// Cell returns the raw value of a cell, "" when empty.
	Cell(row, col int) (string, error)
	// SetCell overwrites the value of a cell in place.
	SetCell(row, col int, value interface{}) error
	// MaxRow returns the last row holding a non-blank cell, 0 for an empty sheet.
	MaxRow() (int, error)
}

type cellRef struct {
	row, col int
}

// Grid is an in-memory Sheet.
type Grid struct {
	name  string
	cells map[cellRef]string
}

// NewGrid creates an empty grid named name.
func NewGrid(name string) *Grid {
	return &Grid{name: name, cells: make(map[cellRef]string)}
}

// NewGridFromRows builds a grid from row-major values; rows[0] becomes row 1.
func NewGridFromRows(name string, rows [][]string) *Grid {
	g := NewGrid(name)
	for r, row := range rows {
		for c, v := range row {
			if v != "" {
				g.cells[cellRef{r + 1, c + 1}] = v
			}
		}
	}
	return g
}

// Name implements Sheet.
func (g *Grid) Name() string { return g.name }

// Cell implements Sheet.
func (g *Grid) Cell(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", fmt.Errorf("invalid cell coordinates (%d, %d)", row, col)
	}
	return g.cells[cellRef{row, col}], nil
}

// SetCell implements Sheet. Numeric values are stored in their shortest
// decimal form so that grids compare like spreadsheet raw values.
func (g *Grid) SetCell(row, col int, value interface{}) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell coordinates (%d, %d)", row, col)
	}
	var s string
	switch v := value.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}
	if s == "" {
		delete(g.cells, cellRef{row, col})
		return nil
	}
	g.cells[cellRef{row, col}] = s
	return nil
}

// MaxRow implements Sheet.
func (g *Grid) MaxRow() (int, error) {
	last := 0
	for ref := range g.cells {
		if ref.row > last {
			last = ref.row
		}
	}
	return last, nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.name)
	for ref, v := range g.cells {
		c.cells[ref] = v
	}
	return c
}

// Equal reports whether two grids hold identical cell values.
func (g *Grid) Equal(other *Grid) bool {
	if len(g.cells) != len(other.cells) {
		return false
	}
	for ref, v := range g.cells {
		if other.cells[ref] != v {
			return false
		}
	}
	return true
}
