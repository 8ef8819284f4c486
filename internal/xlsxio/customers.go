// Package xlsxio reads and writes the customer master as an Excel workbook.
package xlsxio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"hisaab/internal/domain"
)

const customerSheet = "Customers"

// customerColumns is the workbook header row, also used to match columns on import.
var customerColumns = []string{"Name", "GSTIN", "Address 1", "Address 2", "Address 3", "State", "Mobile", "Email"}

// RowError reports a spreadsheet row that was skipped on import.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// CustomerRow is a parsed customer and the spreadsheet row it came from.
type CustomerRow struct {
	Row      int
	Customer domain.Customer
}

func customerValues(c *domain.Customer) []interface{} {
	return []interface{}{c.Name, c.GSTIN, c.Address1, c.Address2, c.Address3, c.State, c.Mobile, c.Email}
}

// newWorkbook starts a workbook with a bold header row on the customer sheet.
func newWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), customerSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(customerColumns))
	for i, c := range customerColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(customerSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(customerSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(customerSheet, "A", "H", 22); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteTemplate writes an empty import workbook containing only the header row.
func WriteTemplate(w io.Writer) error {
	return WriteCustomers(w, nil)
}

// WriteCustomers writes customers to w as an .xlsx workbook.
func WriteCustomers(w io.Writer, customers []domain.Customer) error {
	f, err := newWorkbook()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	for i := range customers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := customerValues(&customers[i])
		// Mobile numbers and GSTINs stay text so Excel keeps leading zeros.
		if err := f.SetSheetRow(customerSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ReadCustomers parses an uploaded workbook. Columns are matched by header
// name in any order; rows without a name are reported and skipped. The first
// sheet is used.
func ReadCustomers(r io.Reader) ([]CustomerRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: workbook is empty", domain.ErrInvalidSpreadsheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, nil, fmt.Errorf("%w: missing Name column", domain.ErrInvalidSpreadsheet)
	}
	get := func(row []string, column string) string {
		i, ok := index[strings.ToLower(column)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var customers []CustomerRow
	var skipped []RowError
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		c := domain.Customer{
			Name:     get(row, "Name"),
			GSTIN:    strings.ToUpper(get(row, "GSTIN")),
			Address1: get(row, "Address 1"),
			Address2: get(row, "Address 2"),
			Address3: get(row, "Address 3"),
			State:    get(row, "State"),
			Mobile:   get(row, "Mobile"),
			Email:    get(row, "Email"),
		}
		if c.Name == "" {
			skipped = append(skipped, RowError{Row: n + 2, Message: "name is required"})
			continue
		}
		customers = append(customers, CustomerRow{Row: n + 2, Customer: c})
	}
	return customers, skipped, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
