package tester

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup opens a fresh sqlite database with foreign keys enforced and the
// schema migrated. The file lives in a per-test temp dir.
func Setup(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inquests.db")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=on", path)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, model.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// WriteWorkbook writes caspio_<workbook>.xlsx into dir with a generated header
// of arity columns followed by rows.
func WriteWorkbook(t testing.TB, dir, workbook string, arity int, rows ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]any, arity)
	for i := range header {
		header[i] = fmt.Sprintf("column%d", i)
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, fmt.Sprintf("caspio_%s.xlsx", workbook))
	require.NoError(t, f.SaveAs(path))

	return path
}

// Row builds a sheet row of the given arity with values at the given columns.
func Row(arity int, values map[int]any) []any {
	row := make([]any, arity)
	for col, v := range values {
		row[col] = v
	}
	return row
}
