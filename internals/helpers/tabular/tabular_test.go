package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]string{
		"units.csv":    "csv",
		"UNITS.CSV":    "csv",
		"leases.txt":   "csv",
		"charges.xlsx": "xlsx",
	} {
		got, err := FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatOf("report.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadCSVNormalizesHeaders(t *testing.T) {
	body := utf8BOM + "Property_ID , Name,notes\n" +
		"p-1,Unit 1A,ground floor\n" +
		",,\n" +
		"p-2, Unit 2B \n"

	table, errs := Read("csv", strings.NewReader(body), []string{"property_id", "name", "notes"})
	require.Empty(t, errs)
	assert.Equal(t, []string{"property_id", "name", "notes"}, table.Headers)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, "p-1", table.Rows[0].Get("property_id"))
	assert.Equal(t, "ground floor", table.Rows[0].Get("notes"))

	assert.Equal(t, 3, table.Rows[1].Line)
	assert.Equal(t, "Unit 2B", table.Rows[1].Get("name"))
	assert.Equal(t, "", table.Rows[1].Get("notes"))
}

func TestReadCSVMissingHeaders(t *testing.T) {
	_, errs := Read("csv", strings.NewReader("name\nUnit 1A\n"), []string{"property_id", "name", "notes"})
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Row)
	assert.Equal(t, []string{"Missing headers: property_id, notes"}, errs[0].Errors)
}

func TestReadEmptyFile(t *testing.T) {
	_, errs := Read("csv", strings.NewReader(""), []string{"name"})
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"File is empty."}, errs[0].Errors)
}

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"charge_id", "amount"}, [][]string{{"c-1", "120000"}}))

	assert.True(t, strings.HasPrefix(buf.String(), utf8BOM))

	table, errs := Read("csv", &buf, []string{"charge_id", "amount"})
	require.Empty(t, errs)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "120000", table.Rows[0].Get("amount"))
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{
		{"l-1", "120000", "2024-04-01", "due"},
		{"l-2", "90000", "2024-05-01", "void"},
	}
	require.NoError(t, WriteXLSX(&buf, "Charges", []string{"lease_id", "amount", "due_date", "status"}, rows))

	table, errs := Read("xlsx", bytes.NewReader(buf.Bytes()), []string{"lease_id", "amount", "due_date", "status"})
	require.Empty(t, errs)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "l-2", table.Rows[1].Get("lease_id"))
	assert.Equal(t, "void", table.Rows[1].Get("status"))
	assert.Equal(t, 3, table.Rows[1].Line)
}
