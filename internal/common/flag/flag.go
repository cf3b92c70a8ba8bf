// Package flag carries the command line options of a worker run to the job
// handlers.
package flag

import (
	"fmt"
	"strings"
	"time"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/models"
)

type Job struct {
	JobName string
	Version string

	// Start and End are "YYYY-MM-DD" or "YYYY-MM-DDTHH:MM:SS" in Lima time,
	// a bare End date covers the whole day.
	Start string
	End   string

	IDs     []string
	IDsFile string
	FundIDs []string

	CSV    bool
	PDF    bool
	Upload bool

	PreserveOrder bool
	LenientPaging bool
}

// Window parses Start and End.
func (j Job) Window() (start, end time.Time, err error) {
	if j.Start == "" || j.End == "" {
		return start, end, fmt.Errorf("%w: --start and --end are required", common.ErrInvalidSelection)
	}

	start, err = common.ParseDateOrDatetime(j.Start, false)
	if err != nil {
		return start, end, fmt.Errorf("%w: start: %w", common.ErrInvalidSelection, err)
	}

	end, err = common.ParseDateOrDatetime(j.End, true)
	if err != nil {
		return start, end, fmt.Errorf("%w: end: %w", common.ErrInvalidSelection, err)
	}

	return start, end, nil
}

// Request builds the report request around the given criteria.
func (j Job) Request(criteria models.SelectionCriteria) models.NoticeReportRequest {
	criteria.FundIDs = splitList(j.FundIDs)
	criteria.PreserveOrder = j.PreserveOrder
	criteria.LenientPaging = j.LenientPaging

	return models.NoticeReportRequest{
		Criteria: criteria,
		WriteCSV: j.CSV,
		WritePDF: j.PDF,
		Upload:   j.Upload,
	}
}

// splitList accepts repeated flags as well as comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IDList returns the ids given on the command line.
func (j Job) IDList() []string {
	return splitList(j.IDs)
}
