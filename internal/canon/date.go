package canon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical SQL date form.
const DateLayout = "2006-01-02"

var (
	isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	usDate  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// MalformedDateError is returned for a date value of unrecognised shape. It is
// fatal: it means the input file is structurally bad.
type MalformedDateError struct {
	Value any
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date: %v", e.Value)
}

// FormatDate normalises a spreadsheet date field into YYYY-MM-DD. Accepted
// values are nil, time.Time, *string and string in either YYYY-MM-DD or
// MM/DD/YYYY form; empty text yields nil.
func FormatDate(value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		s := v.Format(DateLayout)
		return &s, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return FormatDate(*v)
	case *string:
		if v == nil {
			return nil, nil
		}
		return FormatDate(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if m := isoDate.FindStringSubmatch(s); m != nil {
			out := m[1] + "-" + m[2] + "-" + m[3]
			return &out, nil
		}
		if m := usDate.FindStringSubmatch(s); m != nil {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			out := fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
			return &out, nil
		}
	}

	return nil, &MalformedDateError{Value: value}
}

// ParseDate is FormatDate followed by conversion to a time value.
func ParseDate(value any) (*time.Time, error) {
	s, err := FormatDate(value)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, &MalformedDateError{Value: value}
	}
	return &t, nil
}

// GetYearFromDate returns the four digit year of a date value, or nil for
// empty input.
func GetYearFromDate(value any) (*string, error) {
	s, err := FormatDate(value)
	if err != nil || s == nil {
		return nil, err
	}
	year := (*s)[:4]
	return &year, nil
}
