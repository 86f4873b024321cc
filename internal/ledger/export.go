package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// exportHeader is the header row of transaction exports.
var exportHeader = []string{"Date", "Fund", "Type", "Amount", "Payee", "Note"}

const exportSheet = "Transactions"

// ExportRow is one transaction formatted for export.
type ExportRow struct {
	Date   string
	Fund   string
	Type   string
	Amount string
	Payee  string
	Note   string
}

func (r ExportRow) values() []string {
	return []string{r.Date, r.Fund, r.Type, r.Amount, r.Payee, r.Note}
}

// FormatCents formats an amount in cents with two decimals.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ExportRows returns all transactions matching the filter, newest first,
// formatted for export. The limit of the filter is ignored.
func ExportRows(db *gorm.DB, accountID string, filter TransactionFilter) ([]ExportRow, error) {
	filter.Limit = -1

	transactions, err := ListTransactions(db, accountID, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, len(transactions))
	for i, t := range transactions {
		fund := ""
		if t.Fund != nil {
			fund = t.Fund.Name
		}

		rows[i] = ExportRow{
			Date:   t.Date.Format(time.RFC3339),
			Fund:   fund,
			Type:   string(t.Type),
			Amount: FormatCents(t.AmountCents),
			Payee:  t.Payee,
			Note:   t.Note,
		}
	}

	return rows, nil
}

// WriteCSV writes the rows with a header line as CSV.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	writer := csv.NewWriter(w)

	err := writer.Write(exportHeader)
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = writer.Write(row.values())
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the rows with a header line as a spreadsheet.
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", exportSheet)
	if err != nil {
		return err
	}

	for i, values := range append([][]string{exportHeader}, rowValues(rows)...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		err = f.SetSheetRow(exportSheet, cell, &values)
		if err != nil {
			return fmt.Errorf("could not write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

func rowValues(rows []ExportRow) [][]string {
	values := make([][]string, len(rows))
	for i, row := range rows {
		values[i] = row.values()
	}
	return values
}
