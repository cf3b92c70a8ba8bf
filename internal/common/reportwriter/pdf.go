package reportwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/miblum/go-fund-notice/internal/models"
)

const (
	pdfMargin     = 50.0
	pdfLineHeight = 14.0
	pdfFontSize   = 10.0
)

type pdfOptions struct {
	imageWidth float64
	sender     string
}

// writePDF emits one A4 page per item whose image exists on disk. Items
// without an image are skipped, so pages can be fewer than items. Nothing is
// written to out when no page was added.
func writePDF(out io.Writer, items []models.ReportItem, opts pdfOptions) (PDFResult, error) {
	var res PDFResult

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin
	imageW := opts.imageWidth
	if imageW <= 0 || imageW > contentW {
		imageW = contentW
	}

	for _, item := range items {
		if !imageExists(item.ImagePath) {
			res.Skipped = append(res.Skipped, item.Notice.Transaction.ID)
			continue
		}

		sender := item.Sender
		if sender == "" {
			sender = opts.sender
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", pdfFontSize+2)
		pdf.CellFormat(contentW, pdfLineHeight+4, tr(item.Notice.Fields[models.FieldSubject]), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", pdfFontSize)
		for _, line := range headerLines(item, sender) {
			pdf.CellFormat(contentW, pdfLineHeight, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(pdfLineHeight / 2)

		info := pdf.RegisterImageOptions(item.ImagePath, fpdf.ImageOptions{ImageType: "PNG"})
		if pdf.Err() {
			return res, fmt.Errorf("register image %s: %w", item.ImagePath, pdf.Error())
		}

		y := pdf.GetY()
		w, h := fitImage(info.Width(), info.Height(), imageW, pageH-pdfMargin-y)
		pdf.ImageOptions(item.ImagePath, pdfMargin, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		res.Pages++
	}

	if res.Pages == 0 {
		return res, nil
	}

	if err := pdf.Output(out); err != nil {
		return res, fmt.Errorf("write pdf: %w", err)
	}

	return res, nil
}

func headerLines(item models.ReportItem, sender string) []string {
	f := item.Notice.Fields
	hour := f[models.FieldHour]
	if hour == "" {
		hour = f[models.FieldTime]
	}
	return []string{
		fmt.Sprintf("Documento: %s %s", f[models.FieldDocumentType], f[models.FieldDocumentNumber]),
		fmt.Sprintf("Para: %s <%s>", f[models.FieldFullName], f[models.FieldEmail]),
		fmt.Sprintf("De: %s", sender),
		fmt.Sprintf("Fecha: %s %s", f[models.FieldDate], hour),
		fmt.Sprintf("Estado: %s", f[models.FieldStatus]),
		fmt.Sprintf("Operación: %s", OperationLabel(item.Notice)),
	}
}

// fitImage scales to maxW keeping the aspect ratio, then shrinks further
// when the result would run past maxH.
func fitImage(srcW, srcH, maxW, maxH float64) (float64, float64) {
	if srcW <= 0 || srcH <= 0 {
		return maxW, 0
	}
	w := maxW
	h := srcH * w / srcW
	if maxH > 0 && h > maxH {
		h = maxH
		w = srcW * h / srcH
	}
	return w, h
}

func imageExists(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
