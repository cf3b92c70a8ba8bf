// Package rasterizer captures rendered notices as full-page PNG images
// with a headless Chrome.
package rasterizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const logMessage = "[RASTERIZER]"

// ErrClosed is returned by Capture after Close.
var ErrClosed = errors.New("rasterizer closed")

type Rasterizer interface {
	// Capture renders html and writes a full-page PNG named fileName into
	// the images directory. It returns the written path.
	Capture(ctx context.Context, html, fileName string) (string, error)

	// Close tears the browser down. Safe to call more than once.
	Close() error
}

type CaptureFunc func(ctx context.Context, html string) ([]byte, error)

type Options struct {
	Dir        string
	Width      int
	Timeout    time.Duration
	ChromePath string

	// Capture replaces the browser, tests use it to avoid launching Chrome.
	Capture CaptureFunc
}

type chromeRasterizer struct {
	dir     string
	width   int
	timeout time.Duration
	capture CaptureFunc

	execPath  string
	startOnce sync.Once
	startErr  error

	mu            sync.RWMutex
	closed        bool
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func New(opts Options) Rasterizer {
	r := &chromeRasterizer{
		dir:      opts.Dir,
		width:    opts.Width,
		timeout:  opts.Timeout,
		execPath: opts.ChromePath,
		capture:  opts.Capture,
	}
	if r.width <= 0 {
		r.width = 800
	}
	if r.timeout <= 0 {
		r.timeout = time.Minute
	}
	if r.capture == nil {
		r.capture = r.chromeCapture
	}
	return r
}

func (r *chromeRasterizer) Capture(ctx context.Context, html, fileName string) (path string, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if fileName == "" {
		return "", common.ErrFilePathEmpty
	}

	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return "", ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	img, err := r.capture(ctx, html)
	if err != nil {
		return "", fmt.Errorf("capture %s: %w", fileName, err)
	}

	if err = os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	path = filepath.Join(r.dir, fileName)
	if err = os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// start launches the browser once, tabs are opened per capture.
func (r *chromeRasterizer) start() error {
	r.startOnce.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.WindowSize(r.width, 800),
		)
		if r.execPath != "" {
			opts = append(opts, chromedp.ExecPath(r.execPath))
		}

		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		// an empty Run starts the browser process
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			r.startErr = fmt.Errorf("start browser: %w", err)
			return
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			browserCancel()
			allocCancel()
			r.startErr = ErrClosed
			return
		}
		r.allocCancel = allocCancel
		r.browserCtx = browserCtx
		r.browserCancel = browserCancel
	})
	return r.startErr
}

func (r *chromeRasterizer) chromeCapture(ctx context.Context, html string) ([]byte, error) {
	if err := r.start(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	browserCtx := r.browserCtx
	r.mu.RUnlock()
	if browserCtx == nil {
		return nil, ErrClosed
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	// the tab follows the caller's deadline and cancellation
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(r.width), 800),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	return buf, nil
}

func (r *chromeRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.browserCancel != nil {
		r.browserCancel()
		r.allocCancel()
		r.browserCtx = nil
		xlog.Info(context.Background(), logMessage, xlog.String("message", "browser closed"))
	}

	return nil
}
