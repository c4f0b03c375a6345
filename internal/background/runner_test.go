package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunner_RunsTaskAndWaits(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	var ran atomic.Bool
	runner.Go("test.task", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	runner.Wait()

	assert.True(t, ran.Load())
}

func TestRunner_AbsorbsErrorsAndPanics(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	runner.Go("test.failing", func(context.Context) error {
		return errors.New("boom")
	})
	runner.Go("test.panicking", func(context.Context) error {
		panic("boom")
	})

	// Neither failure escapes; Wait returns normally.
	runner.Wait()
}

func TestRunner_TaskContextIsBounded(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	var hasDeadline atomic.Bool
	runner.Go("test.deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	})
	runner.Wait()

	assert.True(t, hasDeadline.Load())
}
