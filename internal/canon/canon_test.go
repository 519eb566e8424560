package canon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAsID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cause-Fall from height", "CAUSE_FALL_FROM_HEIGHT"},
		{"  Inquests.ca ", "INQUESTS_CA"},
		{"Custody/Police", "CUSTODY_POLICE"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatAsID(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, FormatAsID(got), "idempotent")
		})
	}
}

func TestNullHandling(t *testing.T) {
	assert.Nil(t, FormatString(nil))
	assert.Equal(t, "abc", *FormatString(Ptr("  abc ")))

	assert.Equal(t, "", NullableToString(nil))
	assert.Equal(t, "abc", NullableToString(Ptr(" abc")))

	assert.Nil(t, StringToNullable(nil))
	assert.Nil(t, StringToNullable(Ptr("   \n")))
	assert.Equal(t, "x", *StringToNullable(Ptr(" x ")))
}

func TestFormatAsKeyword(t *testing.T) {
	assert.Equal(t, "CSPI review", FormatAsKeyword(" cSPI review"))
	assert.Equal(t, "Police", FormatAsKeyword("police"))
	assert.Equal(t, "", FormatAsKeyword("  "))
}

func TestTitle(t *testing.T) {
	assert.Nil(t, Title(nil))
	assert.Equal(t, "John Paul", *Title(Ptr(" JOHN PAUL ")))
}

func TestFormatDate(t *testing.T) {
	got, err := FormatDate("06/15/2020")
	require.NoError(t, err)
	assert.Equal(t, "2020-06-15", *got)

	got, err = FormatDate("6/5/2020")
	require.NoError(t, err)
	assert.Equal(t, "2020-06-05", *got)

	got, err = FormatDate("2020-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2020-06-15", *got)

	got, err = FormatDate(time.Date(2019, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2019-03-02", *got)

	got, err = FormatDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = FormatDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = FormatDate("not-a-date")
	var malformed *MalformedDateError
	assert.True(t, errors.As(err, &malformed))
}

func TestGetYearFromDate(t *testing.T) {
	year, err := GetYearFromDate("06/15/2020")
	require.NoError(t, err)
	assert.Equal(t, "2020", *year)

	year, err = GetYearFromDate(nil)
	require.NoError(t, err)
	assert.Nil(t, year)

	_, err = GetYearFromDate("15.06.2020")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(Ptr("01/31/1999"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1999, 1, 31, 0, 0, 0, 0, time.UTC), *d)

	_, err = ParseDate("13/45/1999")
	assert.Error(t, err)
}
