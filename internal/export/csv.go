package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row is one line of the payments CSV handed to the society's spreadsheet
type Row struct {
	FlatNumber     string
	ResidentName   string
	Month          string
	AmountDue      float64
	AmountPaid     float64
	Status         string
	DueDate        string
	PaymentDate    string
	PaymentMethod  string
	TransactionRef string
	Remarks        string
}

var header = []string{
	"flat_number", "resident_name", "month", "amount_due", "amount_paid",
	"status", "due_date", "payment_date", "payment_method", "transaction_ref", "remarks",
}

// Write renders the rows as CSV, header included. Amounts use plain decimal
// notation so spreadsheets parse them as numbers.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.FlatNumber,
			row.ResidentName,
			row.Month,
			fmt.Sprintf("%.2f", row.AmountDue),
			fmt.Sprintf("%.2f", row.AmountPaid),
			row.Status,
			row.DueDate,
			row.PaymentDate,
			row.PaymentMethod,
			row.TransactionRef,
			row.Remarks,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for flat %s: %w", row.FlatNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
