package stocksync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/stocksync-go/pkg/stocksync/logging"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/parser"
)

var fixedNow = time.Date(2025, time.January, 23, 9, 30, 0, 0, time.Local)

var rawHeader = []interface{}{
	"공급처코드", "품목코드", "품목명", "당월\n 판매량", "전월\n 판매량", "전전월\n 판매량", "합계", "출고가능량\n (가입고포함)",
}

// writeWorkbook creates the reference workbook layout: an older and a newer
// dated sheet plus the 조흥 supplier sheet.
func writeWorkbook(t *testing.T, dated map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range dated {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(name, "A1", &rawHeader))
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	_, err := f.NewSheet("조흥")
	require.NoError(t, err)
	f.SetCellValue("조흥", "A1", "조흥지에프 20001787")
	f.SetSheetRow("조흥", "A2", &[]interface{}{"No", "품목코드", "품목명", "", "", "", "재고1/21", "당월 판매량", "전월 판매량", "전전월 판매량"})
	f.SetCellValue("조흥", "S2", "현재고")

	f.SetSheetRow("조흥", "A3", &[]interface{}{1, "A1", "사과", "", "", "", 40, 0, 5, 6})
	f.SetCellValue("조흥", "S3", 30)
	f.SetSheetRow("조흥", "A4", &[]interface{}{2, "B2", "배", "", "", "", 1, 1, 1, 1})
	f.SetCellValue("조흥", "S4", 1)

	path := filepath.Join(t.TempDir(), "재고관리.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func cellValue(t *testing.T, path, sheet, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.ReferenceYear = 2025
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func TestUpdate(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0120": {
			{20001787, "A1", "사과", 999, 999, 999, 999, 999},
		},
		"0122": {
			{20001787, "A1", "사과", 10, nil, 3, 50, 45},
			{30000001, "B2", "배", 77, 77, 77, 77, 77},
			{20001787, "C3", "귤", 1, 1, 1, 1, 1},
			{20001787, "D4", "감", 2, 2, 2, 2, 2},
		},
	})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	logger := logging.NewTestLogger(t)
	opts := testOptions()
	opts.Logger = logger.Logger

	report, err := Update(context.Background(), path, opts)
	require.NoError(t, err)

	assert.Equal(t, "0122", report.SourceSheet)
	assert.Equal(t, "조흥", report.TargetSheet)
	assert.Equal(t, "20001787", report.Supplier)
	assert.Equal(t, 3, report.Extracted)
	assert.Equal(t, 1, report.MatchedCount)
	assert.Equal(t, 4, report.UpdatedCells)
	assert.Equal(t, []string{"C3", "D4"}, report.NewItemCodes)
	assert.True(t, report.Saved)

	// A1 updated, prev sales kept because the source cell was blank
	assert.Equal(t, "50", cellValue(t, path, "조흥", "G3"))
	assert.Equal(t, "10", cellValue(t, path, "조흥", "H3"))
	assert.Equal(t, "5", cellValue(t, path, "조흥", "I3"))
	assert.Equal(t, "3", cellValue(t, path, "조흥", "J3"))
	assert.Equal(t, "45", cellValue(t, path, "조흥", "S3"))
	// B2 belongs to another supplier in the source
	assert.Equal(t, "1", cellValue(t, path, "조흥", "H4"))
	// headers untouched
	assert.Equal(t, "재고1/21", cellValue(t, path, "조흥", "G2"))

	// The backup holds the workbook as it was before this run.
	require.Equal(t, BackupPath(path, fixedNow), report.BackupPath)
	backup, err := os.ReadFile(report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, before, backup)
	assert.Equal(t, "0", cellValue(t, report.BackupPath, "조흥", "H3"))

	assert.True(t, logger.Contains("latest raw data sheet"))
	assert.True(t, logger.Contains("workbook saved"))
}

func TestUpdateDryRun(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	opts := testOptions()
	opts.DryRun = true

	report, err := Update(context.Background(), path, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MatchedCount)
	assert.False(t, report.Saved)
	assert.Empty(t, report.BackupPath)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateWithoutBackup(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})

	opts := testOptions()
	backup := false
	opts.Backup = &backup

	report, err := Update(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, report.Saved)
	assert.Empty(t, report.BackupPath)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "10", cellValue(t, path, "조흥", "H3"))
}

func TestUpdateNoDatedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"9999": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = Update(context.Background(), path, testOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrNoCandidate)

	var ue *UpdateError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "select", ue.Step)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateMissingSupplierColumn(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})

	opts := testOptions()
	opts.SupplierColumn = "거래처코드"

	_, err := Update(context.Background(), path, opts)
	assert.ErrorIs(t, err, parser.ErrSchema)
}

func TestUpdateMissingTargetSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})

	opts := testOptions()
	opts.TargetSheet = "대성"

	_, err := Update(context.Background(), path, opts)
	assert.ErrorIs(t, err, parser.ErrSchema)
}

func TestUpdateEmptyExtraction(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{30000001, "A1", "사과", 10, 20, 30, 40, 50}},
	})

	report, err := Update(context.Background(), path, testOptions())
	require.NoError(t, err)
	assert.Zero(t, report.MatchedCount)
	assert.Len(t, report.WarningsOf(models.WarnEmptyExtraction), 1)
	assert.Equal(t, "0", cellValue(t, path, "조흥", "H3"))
}

func TestUpdateFileNotFound(t *testing.T) {
	_, err := Update(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), testOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestUpdateInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := Update(context.Background(), path, testOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestUpdateCanceled(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Update(ctx, path, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "0", cellValue(t, path, "조흥", "H3"))
}

func TestBackupPath(t *testing.T) {
	got := BackupPath(filepath.Join("data", "재고관리.xlsx"), fixedNow)
	assert.Equal(t, filepath.Join("data", "재고관리_backup_20250123_093000.xlsx"), got)
}

func TestShouldBackup(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.ShouldBackup())

	off := false
	opts.Backup = &off
	assert.False(t, opts.ShouldBackup())
}

func TestUpdateInvalidOptions(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"0122": {{20001787, "A1", "사과", 10, 20, 30, 40, 50}},
	})

	opts := testOptions()
	opts.Supplier = ""

	_, err := Update(context.Background(), path, opts)
	var ue *UpdateError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "options", ue.Step)
}

func TestCopyFileRemovesPartialBackup(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "backup.xlsx")

	// Reading a directory fails after the destination is created.
	err := copyFile(dir, dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "partial backup left behind")

	src := filepath.Join(dir, "book.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))
	require.NoError(t, copyFile(src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
