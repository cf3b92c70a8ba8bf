// Package reportwriter assembles the CSV and PDF reports of a notice batch.
package reportwriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/miblum/go-fund-notice/internal/common/labels"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

type PDFResult struct {
	Pages int

	// Skipped holds the transaction ids whose image was missing.
	Skipped []string
}

// Writer writes items in the order given. Implementations are not safe
// for concurrent use on the same path.
type Writer interface {
	WriteCSV(ctx context.Context, path string, items []models.ReportItem) (rows int, err error)
	WritePDF(ctx context.Context, path string, items []models.ReportItem) (PDFResult, error)
}

type writer struct {
	csvEncoding string
	imageWidth  float64
	sender      string
}

func New(cfg config.ReportConfig) Writer {
	return &writer{
		csvEncoding: cfg.CSVEncoding,
		imageWidth:  cfg.ImageWidth,
		sender:      cfg.Sender,
	}
}

func (w *writer) WriteCSV(ctx context.Context, path string, items []models.ReportItem) (rows int, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	f, err := create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return writeCSV(f, items, w.csvEncoding)
}

// WritePDF writes the pdf at path. When no item has an image no file is
// left at path and the result reports zero pages.
func (w *writer) WritePDF(ctx context.Context, path string, items []models.ReportItem) (res PDFResult, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if path == "" {
		return res, errEmptyPath
	}

	var buf bytes.Buffer
	res, err = writePDF(&buf, items, pdfOptions{imageWidth: w.imageWidth, sender: w.sender})
	if err != nil {
		return res, err
	}

	if res.Pages == 0 {
		// a report from an earlier run must not be taken for this one
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return res, fmt.Errorf("remove previous pdf: %w", rmErr)
		}
		return res, nil
	}

	f, err := create(path)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = buf.WriteTo(f); err != nil {
		return res, fmt.Errorf("write pdf: %w", err)
	}
	return res, nil
}

var errEmptyPath = errors.New("report path is empty")

func create(path string) (*os.File, error) {
	if path == "" {
		return nil, errEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	return f, nil
}

// OperationLabel is the type line of a PDF page, e.g. "Rescate Parcial por cuotas".
func OperationLabel(n models.Notice) string {
	parts := []string{labels.TransactionTypeName(string(n.Transaction.Type))}
	if n.Variant.IsSell() || n.Transaction.Type == models.TransactionTypeSell {
		if sub := labels.SubTypeName(string(n.Transaction.SubType)); sub != "" {
			parts = append(parts, sub)
		}
		switch {
		case n.Classification.ByAmount:
			parts = append(parts, labels.QualifierByAmount)
		case n.Classification.ByShares:
			parts = append(parts, labels.QualifierByShares)
		case n.Classification.Full:
			parts = append(parts, labels.QualifierFull)
		}
	}
	return strings.Join(parts, " ")
}
