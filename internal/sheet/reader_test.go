package sheet_test

import (
	"errors"
	"testing"
	"time"

	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/emrgen/inquests-migration/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_DocumentRows(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	tester.WriteWorkbook(t, dir, sheet.WorkbookDocuments, 8,
		[]any{"A1\nA2", "D1", "Short name", "2020 ONCA 1", date, "", "Inquests.ca", "ONCA"},
		[]any{},
		[]any{"A3", "D2", "Other", "cite", "06/15/2020", "https://example.com", "CanLII", "SCC"},
	)

	rows, err := sheet.Read[sheet.DocumentRow](sheet.NewReader(dir), sheet.WorkbookDocuments)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A1\nA2", *rows[0].Authorities)
	assert.Equal(t, "D1", *rows[0].Serial)
	assert.Nil(t, rows[0].Link)
	got, ok := rows[0].Date.(time.Time)
	require.True(t, ok, "date cells decode to time values")
	assert.True(t, date.Equal(got))

	assert.Equal(t, "06/15/2020", rows[1].Date)
	assert.Equal(t, "https://example.com", *rows[1].Link)
}

func TestRead_AuthorityRowTypes(t *testing.T) {
	dir := t.TempDir()
	tester.WriteWorkbook(t, dir, sheet.WorkbookAuthorities, 42,
		tester.Row(42, map[int]any{0: "INQ-1", 1: "Inquest-Smith", 3: "Inquest/Fatality Inquiry", 9: true, 32: 41, 41: 7}),
	)

	rows, err := sheet.Read[sheet.AuthorityRow](sheet.NewReader(dir), sheet.WorkbookAuthorities)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "INQ-1", row.Serial)
	assert.True(t, row.Primary)
	require.NotNil(t, row.Age)
	assert.Equal(t, 41, *row.Age)
	assert.Equal(t, 7, row.ExportID)
	assert.Nil(t, row.Synopsis)
	assert.Nil(t, row.DeathDate)
}

func TestRead_NumericTextDatesStayText(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC)
	tester.WriteWorkbook(t, dir, sheet.WorkbookAuthorities, 42,
		tester.Row(42, map[int]any{0: "I1", 3: "Inquest/Fatality Inquiry", 33: "2019", 34: "20200615", 41: 1}),
		tester.Row(42, map[int]any{0: "I2", 3: "Inquest/Fatality Inquiry", 33: start, 41: 2}),
	)

	rows, err := sheet.Read[sheet.AuthorityRow](sheet.NewReader(dir), sheet.WorkbookAuthorities)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2019", rows[0].Start)
	assert.Equal(t, "20200615", rows[0].End)

	got, ok := rows[1].Start.(time.Time)
	require.True(t, ok, "numeric date cells decode to time values")
	assert.True(t, start.Equal(got))
}

func TestRead_FieldCountMismatch(t *testing.T) {
	dir := t.TempDir()
	tester.WriteWorkbook(t, dir, sheet.WorkbookKeywords, 5,
		[]any{"Authority", "Cause-Fall", "", "", "extra"},
	)

	_, err := sheet.Read[sheet.KeywordRow](sheet.NewReader(dir), sheet.WorkbookKeywords)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheet.ErrFieldCount))
}

func TestRead_InvalidInteger(t *testing.T) {
	dir := t.TempDir()
	tester.WriteWorkbook(t, dir, sheet.WorkbookAuthorities, 42,
		tester.Row(42, map[int]any{0: "A1", 3: "Authority", 41: "first"}),
	)

	_, err := sheet.Read[sheet.AuthorityRow](sheet.NewReader(dir), sheet.WorkbookAuthorities)
	assert.ErrorContains(t, err, "ExportID")
}

func TestRead_MissingWorkbook(t *testing.T) {
	_, err := sheet.Read[sheet.SourceRow](sheet.NewReader(t.TempDir()), sheet.WorkbookSources)
	assert.Error(t, err)
}
