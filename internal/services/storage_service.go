package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const uploadChunkSize = 256 * 1024

const (
	contentTypeCSV    = "text/csv"
	contentTypePDF    = "application/pdf"
	contentTypeBinary = "application/octet-stream"
)

type StorageService interface {
	// UploadReport copies a written report to the bucket under
	// notice_report/{yyyy}/{mm}/ and returns its url.
	UploadReport(ctx context.Context, localPath string, at time.Time) (url string, err error)
	IsReportExist(ctx context.Context, fileName string, at time.Time) (isExist bool, url string)
}

type storage service

func (s *storage) UploadReport(ctx context.Context, localPath string, at time.Time) (url string, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if s.srv.cloudStorage == nil {
		return "", common.ErrStorageNotConfigured
	}

	payload := models.NewCloudStoragePayload(models.NoticeReportObjectPath(at, filepath.Base(localPath)))
	contentType := reportContentType(localPath)

	err = s.srv.retryer.Retry(ctx, func() error {
		url, err = s.uploadOnce(ctx, localPath, &payload, contentType)
		if err == nil {
			return nil
		}

		if errors.Is(err, common.ErrFilePathEmpty) || ctx.Err() != nil {
			return s.srv.retryer.StopRetryWithErr(err)
		}

		xlog.Warn(ctx, "[UPLOAD-REPORT] attempt failed",
			xlog.String("object", payload.GetFilePath()),
			xlog.Err(err))
		return err
	}, nil)
	if err != nil {
		if errDelete := s.srv.cloudStorage.DeleteFile(context.WithoutCancel(ctx), &payload); errDelete != nil {
			xlog.Debug(ctx, "[UPLOAD-REPORT] partial object not removed",
				xlog.String("object", payload.GetFilePath()),
				xlog.Err(errDelete))
		}
		return "", fmt.Errorf("upload %s: %w", payload.GetFilePath(), err)
	}

	xlog.Info(ctx, "[UPLOAD-REPORT] report uploaded",
		xlog.String("object", payload.GetFilePath()),
		xlog.String("url", url))

	return url, nil
}

func (s *storage) uploadOnce(ctx context.Context, localPath string, payload *models.CloudStoragePayload, contentType string) (string, error) {
	file, err := s.srv.fileRepo.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	data := make(chan []byte)
	result := s.srv.cloudStorage.WriteStream(ctx, payload, contentType, data)

	readErr := feedChunks(ctx, file, data)
	if readErr != nil {
		// abort the object, the stream reports the cancellation
		cancel()
	}

	url, err := result.Wait()
	if readErr != nil {
		return "", readErr
	}

	return url, err
}

// feedChunks streams r into data and closes it.
func feedChunks(ctx context.Context, r io.Reader, data chan<- []byte) error {
	defer close(data)

	buf := make([]byte, uploadChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			select {
			case data <- chunk:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// IsReportExist checks the bucket for a report of the given month, returning its url when found.
func (s *storage) IsReportExist(ctx context.Context, fileName string, at time.Time) (isExist bool, url string) {
	if s.srv.cloudStorage == nil {
		return false, ""
	}

	payload := models.NewCloudStoragePayload(models.NoticeReportObjectPath(at, fileName))

	return s.srv.cloudStorage.IsObjectExist(ctx, &payload)
}

func reportContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return contentTypeCSV
	case ".pdf":
		return contentTypePDF
	default:
		return contentTypeBinary
	}
}
