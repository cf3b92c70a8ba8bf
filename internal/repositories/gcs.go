package repositories

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
)

// CloudStorageRepository stores the report artifacts of a batch.
type CloudStorageRepository interface {
	NewWriter(ctx context.Context, payload *models.CloudStoragePayload, contentType string) io.WriteCloser
	WriteStream(ctx context.Context, payload *models.CloudStoragePayload, contentType string, data <-chan []byte) models.WriteStreamResult
	GetURL(payload *models.CloudStoragePayload) (url string)
	IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string)
	DeleteFile(ctx context.Context, payload *models.CloudStoragePayload) error
	Close() error
}

type cloudStorageClient struct {
	config *config.CloudStorageConfig
	client *storage.Client
}

func NewCloudStorageRepository(cfg *config.Config, opts ...option.ClientOption) (CloudStorageRepository, error) {
	if cfg.CloudStorageConfig.BucketName == "" {
		return nil, fmt.Errorf("failed to init cloud storage bucket name not set")
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return &cloudStorageClient{client: client, config: &cfg.CloudStorageConfig}, nil
}

func (cs *cloudStorageClient) GetURL(payload *models.CloudStoragePayload) (url string) {
	return fmt.Sprintf("%s/%s/%s", cs.config.BaseURL, cs.config.BucketName, payload.GetFilePath())
}

func (cs *cloudStorageClient) NewWriter(ctx context.Context, payload *models.CloudStoragePayload, contentType string) io.WriteCloser {
	obj := cs.client.Bucket(cs.config.BucketName).Object(payload.GetFilePath())
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.ContentDisposition = fmt.Sprintf("attachment; filename=%s", payload.Filename)
	return writer
}

// WriteStream copies every chunk of data into the object. The result must be
// waited on, it reports write and close errors.
func (cs *cloudStorageClient) WriteStream(ctx context.Context, payload *models.CloudStoragePayload, contentType string, data <-chan []byte) models.WriteStreamResult {
	ch := make(chan error)
	r := models.NewWriteStreamResult(ch, cs.GetURL(payload))

	go func() {
		defer close(ch)

		// errors are held until data is drained, the producer only waits after it is done
		var errs []error

		writer := cs.NewWriter(ctx, payload, contentType)
		for v := range data {
			if ctx.Err() != nil || len(errs) > 0 {
				continue
			}

			if _, err := writer.Write(v); err != nil {
				errs = append(errs, err)
			}
		}

		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
		}
		if err := writer.Close(); err != nil {
			errs = append(errs, err)
		}

		for _, err := range errs {
			ch <- err
		}
	}()

	return r
}

func (cs *cloudStorageClient) Close() error {
	return cs.client.Close()
}

func (cs *cloudStorageClient) DeleteFile(ctx context.Context, payload *models.CloudStoragePayload) error {
	obj := cs.client.Bucket(cs.config.BucketName).Object(payload.GetFilePath())
	return obj.Delete(ctx)
}

func (cs *cloudStorageClient) IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string) {
	_, err := cs.client.Bucket(cs.config.BucketName).Object(payload.GetFilePath()).Attrs(ctx)
	if err == nil {
		isExist = true
		url = cs.GetURL(payload)
	}

	return
}
