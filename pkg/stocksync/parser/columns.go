package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseColumnRef parses a column reference from configuration.
// Format: a column name ("G", "$S", "aa") or a 1-based number ("7").
func ParseColumnRef(ref string) (int, error) {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "$", ""))
	if ref == "" {
		return 0, fmt.Errorf("empty column reference")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > excelize.MaxColumns {
			return 0, fmt.Errorf("column number %d out of range", n)
		}
		return n, nil
	}

	n, err := excelize.ColumnNameToNumber(strings.ToUpper(ref))
	if err != nil {
		return 0, fmt.Errorf("invalid column reference %q: %w", ref, err)
	}
	return n, nil
}

// ColumnName returns the letter name of a 1-based column, or the number
// itself when it is out of range.
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return strconv.Itoa(col)
	}
	return name
}
