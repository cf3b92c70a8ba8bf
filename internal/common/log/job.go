package log

import (
	"context"
	"time"

	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
)

// LogJob writes the closing line of a worker run.
func LogJob(ctx context.Context, jobName, version string, elapsed time.Duration, summary models.BatchSummary, err error) {
	field := []xlog.Field{
		xlog.String("job-name", jobName),
		xlog.String("version", version),
		xlog.Duration("elapsed", elapsed),
		xlog.Int("processed", summary.Processed),
		xlog.Int("skipped", summary.Skipped),
		xlog.Int("failed", summary.Failed),
	}
	if err != nil {
		field = append(field, xlog.String("status", "fail"), xlog.Err(err))
		xlog.Warn(ctx, "[JOB]", field...)
	} else {
		field = append(field, xlog.String("status", "success"))
		xlog.Info(ctx, "[JOB]", field...)
	}
}
