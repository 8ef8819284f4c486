package xlsxio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hisaab/internal/domain"
	"hisaab/internal/xlsxio"
)

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxio.WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Customers", f.GetSheetName(0))
	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Name", "GSTIN", "Address 1", "Address 2", "Address 3", "State", "Mobile", "Email"}, rows[0])
}

func TestCustomers_RoundTrip(t *testing.T) {
	in := []domain.Customer{
		{Name: "Patel & Sons", GSTIN: "24AAPFU0939F1ZV", Address1: "12 Station Road", State: "Gujarat", Mobile: "9876543210"},
		{Name: "Walk-in", Email: "walkin@example.in"},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxio.WriteCustomers(&buf, in))

	out, skipped, err := xlsxio.ReadCustomers(&buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Row)
	assert.Equal(t, in[0].Name, out[0].Customer.Name)
	assert.Equal(t, in[0].GSTIN, out[0].Customer.GSTIN)
	assert.Equal(t, in[0].Address1, out[0].Customer.Address1)
	assert.Equal(t, in[0].Mobile, out[0].Customer.Mobile)
	assert.Equal(t, in[1].Email, out[1].Customer.Email)
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadCustomers_ColumnOrderAndSkips(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"mobile", "NAME", "gstin"},
		{"9876543210", "Shah Traders", "24aapfu0939f1zv"},
		{"", "", ""},
		{"9123456780", "", ""},
		{"", "Mehta Steel"},
	})

	out, skipped, err := xlsxio.ReadCustomers(buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Shah Traders", out[0].Customer.Name)
	assert.Equal(t, "24AAPFU0939F1ZV", out[0].Customer.GSTIN)
	assert.Equal(t, "9876543210", out[0].Customer.Mobile)
	assert.Equal(t, 5, out[1].Row)
	assert.Equal(t, "Mehta Steel", out[1].Customer.Name)
	assert.Equal(t, []xlsxio.RowError{{Row: 4, Message: "name is required"}}, skipped)
}

func TestReadCustomers_Invalid(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, _, err := xlsxio.ReadCustomers(bytes.NewBufferString("name,gstin\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
	})

	t.Run("missing name column", func(t *testing.T) {
		_, _, err := xlsxio.ReadCustomers(workbook(t, [][]interface{}{{"GSTIN", "State"}}))
		assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
	})
}
