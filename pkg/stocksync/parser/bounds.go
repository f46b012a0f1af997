package parser

import "strings"

// LastPopulatedRow returns the 1-based index of the last row holding a
// non-blank cell, or 0 when every row is blank. Styled but empty rows that
// excelize reports as trailing empty strings are not counted.
func LastPopulatedRow(rows [][]string) int {
	for rowIdx := len(rows) - 1; rowIdx >= 0; rowIdx-- {
		for _, cell := range rows[rowIdx] {
			if strings.TrimSpace(cell) != "" {
				return rowIdx + 1
			}
		}
	}
	return 0
}
