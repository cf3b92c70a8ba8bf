package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository = "repositories"
	LayerService    = "services"
	LayerDelivery   = "deliveries"
	LayerClient     = "common"
	LayerUnknown    = "unknown"
)

type Monitor struct {
	ctx         context.Context
	segmentName string

	// layer is where the caller lives: repository, service, delivery or an outbound client
	layer string

	start time.Time

	segment *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		// must stay a direct call from New, the caller frame names the segment
		pc, file, _, ok := runtime.Caller(1)
		if !ok {
			pc = 0
		}

		fOpts.segmentName = "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			fOpts.segmentName = getSegmentName(fn.Name())
		}

		if fOpts.layer == "" {
			fOpts.layer = layerFromFile(file)
		}
	}
	if fOpts.layer == "" {
		fOpts.layer = LayerUnknown
	}

	txn := newrelic.FromContext(ctx)
	segment := txn.StartSegment(fOpts.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", fOpts.layer)
	}

	return &Monitor{
		ctx:         ctx,
		layer:       fOpts.layer,
		start:       time.Now(),
		segmentName: fOpts.segmentName,
		segment:     segment,
	}
}

func layerFromFile(file string) string {
	switch {
	case strings.Contains(file, "/"+LayerRepository+"/"):
		return LayerRepository
	case strings.Contains(file, "/"+LayerService+"/"):
		return LayerService
	case strings.Contains(file, "/"+LayerDelivery+"/"):
		return LayerDelivery
	case strings.Contains(file, "/"+LayerClient+"/"):
		return LayerClient
	default:
		return LayerUnknown
	}
}

// NewMiddlewareRoundTripper wraps next so outbound calls become external
// segments of the transaction carried by the request context.
func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}

// StartTransaction opens a background transaction for one job run.
// A nil app yields a nil transaction, which newrelic treats as a no-op.
func StartTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, *newrelic.Transaction) {
	if app == nil {
		return ctx, nil
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn
}
