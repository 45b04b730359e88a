package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BestEffort runs side effects whose failure must not change the outcome of
// the operation that triggered them (notification email, view counter).
// Failures go to the logger and to an optional sink, never to the caller.
type BestEffort struct {
	logger *zap.Logger
	sink   func(task string, err error)
}

func NewBestEffort(logger *zap.Logger) *BestEffort {
	return &BestEffort{logger: logger}
}

// WithSink returns a copy that also reports failures to fn.
func (b *BestEffort) WithSink(fn func(task string, err error)) *BestEffort {
	return &BestEffort{logger: b.logger, sink: fn}
}

// Run executes fn in the caller's goroutine and swallows its error or panic.
func (b *BestEffort) Run(ctx context.Context, task string, fn func(ctx context.Context) error) {
	err := b.call(ctx, fn)
	if err == nil {
		return
	}

	b.logger.Warn("best-effort task failed", zap.String("task", task), zap.Error(err))
	if b.sink != nil {
		b.sink(task, err)
	}
}

func (b *BestEffort) call(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
