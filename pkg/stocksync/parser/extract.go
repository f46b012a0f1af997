package parser

import (
	"fmt"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/xuri/excelize/v2"
)

// ExtractSpec describes which rows and columns of a dated sheet to read.
type ExtractSpec struct {
	// Sheet is the dated sheet name, used in errors and warnings.
	Sheet string
	// Supplier is the supplier key rows must carry.
	Supplier string
	// SupplierColumn is the header of the supplier key column.
	SupplierColumn string
	// ItemCodeColumn is the header of the item code column.
	ItemCodeColumn string
	// Columns maps each tracked field to its source header.
	Columns map[models.Field]string
}

// ExtractFromFile reads sheetName from f and extracts the supplier records.
func ExtractFromFile(f *excelize.File, spec ExtractSpec) ([]models.SourceRecord, []models.Warning, error) {
	rows, err := ReadRows(f, spec.Sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", spec.Sheet, err)
	}
	return ExtractSupplierRecords(rows, spec)
}

// ExtractSupplierRecords filters rows to the supplier and projects the
// tracked fields. The first row is the header. A missing supplier or item
// code column is a *SchemaError; a missing metric column only produces a
// warning and leaves that field absent.
func ExtractSupplierRecords(rows []models.CellRow, spec ExtractSpec) ([]models.SourceRecord, []models.Warning, error) {
	if len(rows) == 0 {
		return nil, nil, &SchemaError{Sheet: spec.Sheet, Column: spec.SupplierColumn}
	}

	header := indexHeader(rows[0])
	supplierCol, ok := header[models.NormalizeHeader(spec.SupplierColumn)]
	if !ok {
		return nil, nil, &SchemaError{Sheet: spec.Sheet, Column: spec.SupplierColumn}
	}
	itemCol, ok := header[models.NormalizeHeader(spec.ItemCodeColumn)]
	if !ok {
		return nil, nil, &SchemaError{Sheet: spec.Sheet, Column: spec.ItemCodeColumn}
	}

	var warnings []models.Warning
	fieldCols := make(map[models.Field]int, len(spec.Columns))
	for _, field := range models.Fields {
		name, configured := spec.Columns[field]
		if !configured {
			continue
		}
		col, ok := header[models.NormalizeHeader(name)]
		if !ok {
			warnings = append(warnings, models.Warning{
				Kind:    models.WarnMissingColumn,
				Sheet:   spec.Sheet,
				Column:  name,
				Message: fmt.Sprintf("column %q not found, %s left unchanged", name, field),
			})
			continue
		}
		fieldCols[field] = col
	}

	supplier := models.NormalizeKey(spec.Supplier)
	var records []models.SourceRecord
	for _, row := range rows[1:] {
		if models.NormalizeKey(row.Value(supplierCol)) != supplier {
			continue
		}
		code := models.NormalizeKey(row.Value(itemCol))
		if code == "" {
			continue
		}

		record := models.SourceRecord{R: row.R, ItemCode: code}
		for _, field := range models.Fields {
			col, ok := fieldCols[field]
			if !ok {
				continue
			}
			raw := row.Value(col)
			v, ok := parseQuantity(raw)
			if !ok {
				warnings = append(warnings, models.Warning{
					Kind:     models.WarnUnparseableValue,
					Sheet:    spec.Sheet,
					Column:   spec.Columns[field],
					ItemCode: code,
					Row:      row.R,
					Message:  fmt.Sprintf("value %q is not a number", raw),
				})
				continue
			}
			if v.Valid {
				record.Set(field, v.Decimal)
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarnEmptyExtraction,
			Sheet:   spec.Sheet,
			Message: fmt.Sprintf("no rows for supplier %s", spec.Supplier),
		})
	}

	return records, warnings, nil
}

// indexHeader maps normalised header labels to their column. The leftmost
// column wins when a label repeats.
func indexHeader(row models.CellRow) map[string]int {
	index := make(map[string]int, len(row.C))
	for col, label := range row.C {
		key := models.NormalizeHeader(label)
		if prev, ok := index[key]; !ok || col < prev {
			index[key] = col
		}
	}
	return index
}
