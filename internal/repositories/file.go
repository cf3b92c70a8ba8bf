package repositories

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/miblum/go-fund-notice/internal/common"
)

// FileRepository reads the local id list files handed to the by-ids job.
type FileRepository interface {
	Open(path string) (io.ReadCloser, error)
	StreamReadCSVFile(ctx context.Context, fileRead io.Reader) <-chan StreamReadCSVFileResult
}

type fileRepo struct{}

func (*fileRepo) Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, common.ErrFilePathEmpty
	}
	return os.Open(path)
}

// StreamReadCSVFile streams each row, rows may have a varying number of fields.
func (*fileRepo) StreamReadCSVFile(ctx context.Context, fileRead io.Reader) <-chan StreamReadCSVFileResult {
	resultCh := make(chan StreamReadCSVFileResult)

	go func() {
		defer close(resultCh)

		csvReader := csv.NewReader(bufio.NewReader(fileRead))
		csvReader.FieldsPerRecord = -1
		csvReader.TrimLeadingSpace = true

		for {
			row, err := csvReader.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			result := StreamReadCSVFileResult{Data: row, Err: err}
			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}

			if err != nil {
				return
			}
		}
	}()

	return resultCh
}

func NewFileRepository() FileRepository {
	return &fileRepo{}
}

type StreamReadCSVFileResult struct {
	Data []string
	Err  error
}
