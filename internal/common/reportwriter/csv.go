package reportwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/miblum/go-fund-notice/internal/common/labels"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
)

var CSVHeader = []string{
	"Transaction Id",
	"Transaction Type",
	"Customer Id",
	"Customer Name",
	"Customer Type",
	"Correo Electrónico",
	"Tipo Documento",
	"Número Documento",
	"Archivo",
}

func csvRow(item models.ReportItem) []string {
	n := item.Notice
	return []string{
		n.Transaction.ID,
		labels.TransactionTypeName(string(n.Transaction.Type)),
		n.Customer.ID,
		n.Customer.FullName(),
		labels.CustomerTypeName(string(n.Customer.Type)),
		n.Fields[models.FieldEmail],
		n.Fields[models.FieldDocumentType],
		n.Fields[models.FieldDocumentNumber],
		n.FileName,
	}
}

// writeCSV writes the header and one row per item. Windows-1252 replaces
// characters it cannot represent instead of failing.
func writeCSV(out io.Writer, items []models.ReportItem, enc string) (int, error) {
	if enc == config.CSVEncodingWindows1252 {
		out = encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Writer(out)
	}

	w := csv.NewWriter(out)
	if err := w.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	rows := 0
	for _, item := range items {
		if err := w.Write(csvRow(item)); err != nil {
			return rows, fmt.Errorf("write csv row %s: %w", item.Notice.Transaction.ID, err)
		}
		rows++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}

	return rows, nil
}
