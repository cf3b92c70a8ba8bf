// Package matcher holds gomock matchers for the context handed to mocked
// collaborators.
package matcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/miblum/go-fund-notice/internal/common/xlog/ctxdata"
)

type contextMatcher struct {
	desc  string
	match func(ctx context.Context) bool
}

func (m contextMatcher) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	return ok && m.match(ctx)
}

func (m contextMatcher) String() string {
	return m.desc
}

// ContextWithTimeoutRange matches a context whose remaining time is inside [min, max].
func ContextWithTimeoutRange(min, max time.Duration) gomock.Matcher {
	return contextMatcher{
		desc: fmt.Sprintf("context with deadline in [%s, %s]", min, max),
		match: func(ctx context.Context) bool {
			deadline, ok := ctx.Deadline()
			if !ok {
				return false
			}
			remaining := time.Until(deadline)
			return remaining > 0 && remaining >= min && remaining <= max
		},
	}
}

// ContextWithCorrelationID matches a context that carries a correlation id.
func ContextWithCorrelationID() gomock.Matcher {
	return contextMatcher{
		desc: "context with correlation id",
		match: func(ctx context.Context) bool {
			return ctxdata.GetCorrelationId(ctx) != ""
		},
	}
}
