// Package parser reads inventory worksheets: dated sheet selection, supplier
// row extraction and single-sheet cell access.
package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/xuri/excelize/v2"
)

// ReadRows reads the raw cell values of a sheet.
// It returns a slice of CellRow containing non-blank rows.
func ReadRows(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return toCellRows(rows), nil
}

func toCellRows(rows [][]string) []models.CellRow {
	var result []models.CellRow
	for rowIdx, row := range rows {
		cellMap := make(map[int]string)
		for colIdx, cellValue := range row {
			if strings.TrimSpace(cellValue) == "" {
				continue
			}
			cellMap[colIdx+1] = cellValue
		}
		if len(cellMap) > 0 {
			result = append(result, models.CellRow{
				R: rowIdx + 1,
				C: cellMap,
			})
		}
	}
	return result
}

// parseQuantity parses a metric cell. Blank cells are absent (ok is true,
// Valid is false); text that is not a number yields ok false.
func parseQuantity(s string) (v decimal.NullDecimal, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}
