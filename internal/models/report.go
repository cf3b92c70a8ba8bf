package models

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

type NoticeReportRequest struct {
	Criteria SelectionCriteria
	WriteCSV bool
	WritePDF bool
	Upload   bool
}

// ReportItem is one successfully built notice, in batch order.
type ReportItem struct {
	Notice    Notice `json:"notice"`
	ImagePath string `json:"imagePath"`
	Sender    string `json:"sender"`
}

// Steps of the per item pipeline, recorded on failures.
const (
	StepValidate = "validate"
	StepBuild    = "build"
	StepRender   = "render"
	StepCapture  = "capture"
)

// Skip reasons.
const (
	SkipTransactionNotFound = "transaction_not_found"
	SkipFundNotSelected     = "fund_not_selected"
)

type ItemFailure struct {
	TransactionID string    `json:"transactionId"`
	Step          string    `json:"step"`
	Reason        string    `json:"reason"`
	FailedAt      time.Time `json:"failedAt"`
	Attempts      int       `json:"attempts"`
	err           error
}

func NewItemFailure(transactionID, step string, err error) ItemFailure {
	return ItemFailure{
		TransactionID: transactionID,
		Step:          step,
		Reason:        err.Error(),
		FailedAt:      time.Now(),
		Attempts:      1,
		err:           err,
	}
}

func (f ItemFailure) Error() string {
	return fmt.Sprintf("transaction %s failed at %s: %s", f.TransactionID, f.Step, f.Reason)
}

func (f ItemFailure) Unwrap() error {
	return f.err
}

type ItemSkip struct {
	TransactionID string `json:"transactionId"`
	Reason        string `json:"reason"`
}

// BatchSummary reports one run. Processed and Failed partition Selected, an
// item whose capture failed is failed even though its CSV row is written.
type BatchSummary struct {
	Selected  int `json:"selected"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	// Unclassified counts redemptions built without a classification
	// because the detail lookup failed.
	Unclassified int `json:"unclassified"`

	Skips    []ItemSkip    `json:"skips,omitempty"`
	Failures []ItemFailure `json:"failures,omitempty"`

	CSVPath      string   `json:"csvPath,omitempty"`
	CSVRows      int      `json:"csvRows"`
	PDFPath      string   `json:"pdfPath,omitempty"`
	PDFPages     int      `json:"pdfPages"`
	UploadedURLs []string `json:"uploadedUrls,omitempty"`
}

func (s *BatchSummary) AddSkip(transactionID, reason string) {
	s.Skipped++
	s.Skips = append(s.Skips, ItemSkip{TransactionID: transactionID, Reason: reason})
}

func (s *BatchSummary) AddFailure(f ItemFailure) {
	s.Failed++
	s.Failures = append(s.Failures, f)
}

// Err aggregates item failures, nil when every item went through.
func (s BatchSummary) Err() error {
	var errs *multierror.Error
	for _, f := range s.Failures {
		errs = multierror.Append(errs, f)
	}
	return errs.ErrorOrNil()
}

// FailureLedgerEntry is what the failure ledger keeps per transaction id.
type FailureLedgerEntry struct {
	TransactionID string    `json:"transactionId"`
	Step          string    `json:"step"`
	Reason        string    `json:"reason"`
	FirstFailedAt time.Time `json:"firstFailedAt"`
	LastFailedAt  time.Time `json:"lastFailedAt"`
	Attempts      int       `json:"attempts"`
}
