package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"leadpulse/pkg/contracts/domain"
)

// utf8BOM makes Excel detect the encoding when a report is double-clicked.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func accountHeaders() []string {
	return []string{
		"ID", "Name", "Address", "Sales", "Estimated",
		"Created", "Last Activity", "Owner", "Stage",
	}
}

func accountRow(a domain.AccountView) []string {
	return []string{
		fmt.Sprintf("%d", a.ID),
		a.Name,
		a.Address,
		a.Sales,
		formatBool(a.EstimatedValue),
		a.CreateDate,
		a.LastActivity,
		a.Owner,
		a.Stage,
	}
}

// WriteAccountsCSV streams the snapshot's account list as CSV, prefixed with
// a UTF-8 BOM for Excel compatibility.
func WriteAccountsCSV(w io.Writer, snap *domain.Snapshot) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(accountHeaders()); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, account := range snap.Accounts {
		if err := cw.Write(accountRow(account)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
