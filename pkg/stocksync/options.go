// Package stocksync updates a supplier worksheet of an inventory workbook
// from the newest dated raw-data worksheet.
package stocksync

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/logging"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/reconcile"
)

// Options configures an update run.
type Options struct {
	// Supplier is the supplier key to filter the dated sheet by.
	Supplier string
	// TargetSheet is the supplier sheet to update.
	TargetSheet string
	// SupplierColumn is the source header holding supplier keys.
	SupplierColumn string
	// ItemCodeColumn is the source header holding item codes.
	ItemCodeColumn string
	// SourceColumns maps each tracked field to its source header.
	SourceColumns map[models.Field]string
	// Layout is the target sheet column contract.
	Layout reconcile.TargetLayout
	// ReferenceYear completes MMDD sheet names. Zero means the year of Now.
	ReferenceYear int
	// Backup specifies whether to copy the workbook before saving.
	// If nil, defaults to true.
	Backup *bool
	// DryRun reconciles in memory without saving.
	DryRun bool
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
	// Logger receives step logs. If nil, the default logger is used.
	Logger *zerolog.Logger
}

// DefaultOptions returns options for the reference workbook: supplier
// 20001787 in the 조흥 sheet.
func DefaultOptions() Options {
	return Options{
		Supplier:       "20001787",
		TargetSheet:    "조흥",
		SupplierColumn: "공급처코드",
		ItemCodeColumn: "품목코드",
		SourceColumns: map[models.Field]string{
			models.CurrentSales:        "당월 판매량",
			models.PrevSales:           "전월 판매량",
			models.TwoMonthsPriorSales: "전전월 판매량",
			models.AggregateStock:      "합계",
			models.Shippable:           "출고가능량 (가입고포함)",
		},
		Layout: reconcile.DefaultLayout(),
	}
}

// Validate checks that the options name a supplier, both key columns and a
// usable target layout.
func (o Options) Validate() error {
	switch {
	case o.Supplier == "":
		return errors.New("supplier code is required")
	case o.TargetSheet == "":
		return errors.New("target sheet is required")
	case o.SupplierColumn == "" || o.ItemCodeColumn == "":
		return errors.New("supplier and item code source columns are required")
	}
	return o.Layout.Validate()
}

// ShouldBackup returns whether to write a backup copy before saving.
func (o Options) ShouldBackup() bool {
	if o.Backup != nil {
		return *o.Backup
	}
	return true
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) year() int {
	if o.ReferenceYear != 0 {
		return o.ReferenceYear
	}
	return o.now().Year()
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return *logging.Default()
}
