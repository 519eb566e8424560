package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrFieldCount is returned when a sheet's column count differs from its row type.
	ErrFieldCount = errors.New("field count mismatch")
)

// Reader reads caspio_<workbook>.xlsx exports from a data directory.
type Reader struct {
	dir string
}

func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Path returns the file backing a workbook.
func (r *Reader) Path(workbook string) string {
	return filepath.Join(r.dir, fmt.Sprintf("caspio_%s.xlsx", workbook))
}

// Read decodes every row of the active sheet of a workbook into T, skipping the
// header row and blank rows. Reading is restartable: each call reopens the file.
func Read[T Row](r *Reader, workbook string) ([]T, error) {
	var zero T
	arity := zero.Arity()

	f, err := excelize.OpenFile(r.Path(workbook))
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", workbook, err)
	}
	defer f.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	toDate := func(serial float64) (time.Time, error) {
		return excelize.ExcelDateToTime(serial, date1904)
	}

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheetName, workbook, err)
	}

	var out []T
	for i, cells := range rows {
		line := i + 1
		cells = trimTrailing(cells)

		if line == 1 {
			if len(cells) != arity {
				return nil, fmt.Errorf("%s header: %w: want %d columns, got %d", workbook, ErrFieldCount, arity, len(cells))
			}
			continue
		}
		if len(cells) == 0 {
			logrus.Debugf("Skipping blank row %d of %s.", line, workbook)
			continue
		}
		if len(cells) > arity {
			return nil, fmt.Errorf("%s row %d: %w: want %d columns, got %d", workbook, line, ErrFieldCount, arity, len(cells))
		}

		isText := func(col int) bool {
			return textCell(f, sheetName, col, line)
		}

		var row T
		if err := decode(reflect.ValueOf(&row).Elem(), cells, toDate, isText); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", workbook, line, err)
		}
		out = append(out, row)
	}

	logrus.Debugf("Read %d rows from %s.", len(out), workbook)

	return out, nil
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

// textCell reports whether a cell is stored as a string, so that text such as
// "2019" is never read as a date serial.
func textCell(f *excelize.File, sheetName string, col, line int) bool {
	axis, err := excelize.CoordinatesToCellName(col+1, line)
	if err != nil {
		return false
	}
	cellType, err := f.GetCellType(sheetName, axis)
	if err != nil {
		return false
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return true
	}
	return false
}
