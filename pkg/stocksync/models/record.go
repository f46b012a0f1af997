package models

import "github.com/shopspring/decimal"

// SourceRecord is one supplier-scoped row taken from the dated sheet.
type SourceRecord struct {
	// R is the source row number (1-based), kept for diagnostics.
	R int `json:"r"`
	// ItemCode is the natural key shared with the supplier sheet.
	ItemCode string `json:"item_code"`
	// Values holds the projected metrics. A missing or invalid entry means
	// the source had no value and the target cell must be left alone.
	Values map[Field]decimal.NullDecimal `json:"values,omitempty"`
}

// Value returns the value for f; Valid is false when the field is absent.
func (r SourceRecord) Value(f Field) decimal.NullDecimal {
	if r.Values == nil {
		return decimal.NullDecimal{}
	}
	return r.Values[f]
}

// Set records a present value for f.
func (r *SourceRecord) Set(f Field, d decimal.Decimal) {
	if r.Values == nil {
		r.Values = make(map[Field]decimal.NullDecimal)
	}
	r.Values[f] = decimal.NewNullDecimal(d)
}

// CellValue converts a quantity to the value written into a sheet: int64
// for integral quantities, float64 otherwise.
func CellValue(d decimal.Decimal) interface{} {
	if d.IsInteger() && d.Abs().LessThan(decimal.NewFromInt(1<<53)) {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
