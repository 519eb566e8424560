package sheet

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateConverter turns a raw numeric cell into a time value.
type DateConverter func(serial float64) (time.Time, error)

// TextCell reports whether the cell in column col of the current row is
// stored as text.
type TextCell func(col int) bool

type field struct {
	index int
	col   int
	name  string
}

func fieldsOf(t reflect.Type) ([]field, error) {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("col")
		if !ok {
			continue
		}
		col, err := strconv.Atoi(tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: invalid col tag %q", t.Name(), f.Name, tag)
		}
		fields = append(fields, field{index: i, col: col, name: f.Name})
	}
	return fields, nil
}

// decode binds the cells of one row to the tagged fields of dst.
func decode(dst reflect.Value, cells []string, toDate DateConverter, isText TextCell) error {
	fields, err := fieldsOf(dst.Type())
	if err != nil {
		return err
	}

	for _, f := range fields {
		var cell string
		if f.col < len(cells) {
			cell = cells[f.col]
		}
		convert := toDate
		if isText != nil && cell != "" && dst.Field(f.index).Type() == anyType && isText(f.col) {
			convert = nil
		}
		if err := setField(dst.Field(f.index), cell, convert); err != nil {
			return fmt.Errorf("column %d (%s): %w", f.col, f.name, err)
		}
	}

	return nil
}

var (
	stringPtrType = reflect.TypeOf((*string)(nil))
	intPtrType    = reflect.TypeOf((*int)(nil))
	anyType       = reflect.TypeOf((*any)(nil)).Elem()
)

func setField(v reflect.Value, cell string, toDate DateConverter) error {
	switch {
	case v.Kind() == reflect.String:
		v.SetString(cell)
	case v.Type() == stringPtrType:
		if cell != "" {
			s := cell
			v.Set(reflect.ValueOf(&s))
		}
	case v.Kind() == reflect.Int:
		if strings.TrimSpace(cell) == "" {
			return nil
		}
		n, err := parseInt(cell)
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case v.Type() == intPtrType:
		if strings.TrimSpace(cell) == "" {
			return nil
		}
		n, err := parseInt(cell)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(&n))
	case v.Kind() == reflect.Bool:
		b, err := parseBool(cell)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case v.Type() == anyType:
		if strings.TrimSpace(cell) == "" {
			return nil
		}
		// Numeric date cells arrive as serial numbers. Text cells, even numeric
		// looking ones, are left to the builders.
		if serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && toDate != nil {
			t, err := toDate(serial)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(t))
			return nil
		}
		v.Set(reflect.ValueOf(cell))
	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}

func parseInt(cell string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", cell)
	}
	return int(f), nil
}

func parseBool(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y", "x":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", cell)
}
