package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelplane/modelplane/pkg/loop"
)

func TestStart_BreaksWithValueAndError(t *testing.T) {
	wantErr := errors.New("stop here")

	got, err := loop.Start(context.Background(), 0, func(_ context.Context, n int) (int, loop.Next) {
		n += 1
		if 3 <= n {
			return n, loop.Break(wantErr)
		}
		return n, loop.Continue(0)
	})

	if got != 3 {
		t.Errorf("expected 3 iterations, got %d", got)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}

func TestStart_BreakNilMeansNoError(t *testing.T) {
	got, err := loop.Start(context.Background(), "", func(_ context.Context, s string) (string, loop.Next) {
		return s + "x", loop.Break(nil)
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got != "x" {
		t.Errorf("expected single iteration, got %q", got)
	}
}

func TestStart_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	count := 0
	_, err := loop.Start(ctx, 0, func(_ context.Context, n int) (int, loop.Next) {
		count += 1
		if count == 2 {
			cancel()
		}
		return n + 1, loop.Continue(time.Hour)
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if 2 < count {
		t.Errorf("loop kept running after cancel: %d iterations", count)
	}
}

func TestStart_DoesNotRunWhenAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := loop.Start(ctx, 0, func(_ context.Context, n int) (int, loop.Next) {
		ran = true
		return n, loop.Break(nil)
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Error("task should not run with a cancelled context")
	}
}
