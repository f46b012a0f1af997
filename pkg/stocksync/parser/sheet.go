package parser

import (
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is a models.Sheet bound to one worksheet of an open workbook.
type xlsxSheet struct {
	f    *excelize.File
	name string
}

// OpenSheet binds a models.Sheet to the worksheet called name. Other
// worksheets of f are not reachable through it.
func OpenSheet(f *excelize.File, name string) (models.Sheet, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, &SchemaError{Sheet: name}
	}
	return &xlsxSheet{f: f, name: name}, nil
}

func (s *xlsxSheet) Name() string { return s.name }

func (s *xlsxSheet) Cell(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return s.f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
}

func (s *xlsxSheet) SetCell(row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.f.SetCellValue(s.name, cell, value)
}

func (s *xlsxSheet) MaxRow() (int, error) {
	rows, err := s.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, err
	}
	return LastPopulatedRow(rows), nil
}
