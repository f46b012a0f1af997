package models

// Field identifies one of the tracked inventory metrics copied from the
// dated raw-data sheet into the supplier sheet.
type Field int

const (
	// CurrentSales is the current-month sales quantity.
	CurrentSales Field = iota
	// PrevSales is the previous-month sales quantity.
	PrevSales
	// TwoMonthsPriorSales is the sales quantity two months back.
	TwoMonthsPriorSales
	// AggregateStock is the summed stock over all warehouses.
	AggregateStock
	// Shippable is the quantity available to ship, including pending receipts.
	Shippable
)

// Fields lists every tracked field in reporting order.
var Fields = []Field{CurrentSales, PrevSales, TwoMonthsPriorSales, AggregateStock, Shippable}

var fieldNames = map[Field]string{
	CurrentSales:        "current_sales",
	PrevSales:           "prev_sales",
	TwoMonthsPriorSales: "two_months_prior_sales",
	AggregateStock:      "aggregate_stock",
	Shippable:           "shippable",
}

// String returns the config name of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseField resolves a config name back to a Field.
func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}
