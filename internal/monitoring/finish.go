package monitoring

import (
	"errors"
	"time"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
)

const (
	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"
)

func layerPrefix(layer string) string {
	switch layer {
	case LayerRepository:
		return "[REPOSITORY]"
	case LayerService:
		return "[SERVICE]"
	case LayerDelivery:
		return "[DELIVERY]"
	case LayerClient:
		return "[CLIENT]"
	default:
		return "[-]"
	}
}

type finishOptions struct {
	err    error
	fields []xlog.Field
}

type FinishOption func(*finishOptions)

func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishXlogFields(fields ...xlog.Field) FinishOption {
	return func(o *finishOptions) {
		o.fields = append(o.fields, fields...)
	}
}

// finishStatus maps the call outcome to a log status. A missing entity is an
// expected outcome for lookups and only becomes a failure at the item level.
func finishStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, common.ErrEntityNotFound):
		return statusNotFound
	default:
		return statusError
	}
}

func (m *Monitor) Finish(opts ...FinishOption) {
	o := &finishOptions{}
	for _, opt := range opts {
		opt(o)
	}

	status := finishStatus(o.err)
	fields := append(o.fields,
		xlog.String("segment", m.segmentName),
		xlog.String("status", status),
		xlog.Duration("processDuration", time.Since(m.start)))

	switch status {
	case statusError:
		xlog.Warn(m.ctx, layerPrefix(m.layer), append(fields, xlog.Err(o.err))...)
	case statusNotFound:
		xlog.Info(m.ctx, layerPrefix(m.layer), append(fields, xlog.Err(o.err))...)
	default:
		// repositories and clients stay quiet on success
		if m.layer == LayerDelivery || m.layer == LayerService {
			xlog.Debug(m.ctx, layerPrefix(m.layer), fields...)
		}
	}

	if m.segment != nil {
		m.segment.AddAttribute("status", status)
		m.segment.End()
	}
}
