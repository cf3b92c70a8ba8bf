package models

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

type CloudStoragePayload struct {
	Filename string
	Path     string
}

func (c CloudStoragePayload) GetFilePath() string {
	if c.Path == "" {
		return c.Filename
	}
	return fmt.Sprintf("%s/%s", c.Path, c.Filename)
}

func NewCloudStoragePayload(input string) CloudStoragePayload {
	input = path.Clean(strings.ReplaceAll(input, "\\", "/"))

	dir := path.Dir(input)
	if strings.TrimSpace(dir) == "." {
		dir = ""
	}

	return CloudStoragePayload{Filename: path.Base(input), Path: dir}
}

type WriteStreamResult struct {
	errCh <-chan error
	url   string
}

func NewWriteStreamResult(errCh <-chan error, url string) WriteStreamResult {
	return WriteStreamResult{errCh: errCh, url: url}
}

// Wait drains the stream errors and returns the object url.
func (r WriteStreamResult) Wait() (string, error) {
	var errs *multierror.Error
	for e := range r.errCh {
		errs = multierror.Append(errs, e)
	}

	return r.url, errs.ErrorOrNil()
}

const NoticeReportFolder = "notice_report"

// NoticeReportObjectPath is "notice_report/{yyyy}/{mm}/{file}".
func NoticeReportObjectPath(at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%04d/%02d/%s", NoticeReportFolder, at.Year(), int(at.Month()), fileName)
}
