package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/task"
)

func waitFor(t *testing.T, testee task.Tracker, id string, want domain.TaskStatus) domain.Task {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if got := testee.Get(id); got.Status == want {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s did not reach status %s (last: %s)", id, want, testee.Get(id).Status)
	return domain.Task{}
}

func TestTracker_SuccessfulTask(t *testing.T) {
	testee := task.New(context.Background())

	release := make(chan struct{})
	id := testee.Submit(func(context.Context) error {
		<-release
		return nil
	})

	if got := testee.Get(id); got.Status.Terminal() {
		t.Fatalf("task should not be terminal yet, but: %s", got.Status)
	}

	close(release)
	got := waitFor(t, testee, id, domain.TaskCompleted)
	if got.Reason != "" {
		t.Errorf("completed task should carry no reason, but: %s", got.Reason)
	}
}

func TestTracker_FailingTaskKeepsReason(t *testing.T) {
	testee := task.New(context.Background())

	id := testee.Submit(func(context.Context) error {
		return errors.New("fake build error")
	})

	got := waitFor(t, testee, id, domain.TaskFailed)
	if got.Reason != "fake build error" {
		t.Errorf("unexpected reason: %s", got.Reason)
	}
}

func TestTracker_UnknownId(t *testing.T) {
	testee := task.New(context.Background())

	got := testee.Get("no-such-task")
	if got.Status != domain.TaskNotFound {
		t.Errorf("unknown id should be not_found, but: %s", got.Status)
	}
}

func TestTracker_IdsAreUnique(t *testing.T) {
	testee := task.New(context.Background())

	seen := map[string]bool{}
	for range 10 {
		id := testee.Submit(func(context.Context) error { return nil })
		if seen[id] {
			t.Fatalf("duplicated task id: %s", id)
		}
		seen[id] = true
	}
}

func TestTracker_TasksObserveBaseContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	testee := task.New(ctx)

	id := testee.Submit(func(taskCtx context.Context) error {
		<-taskCtx.Done()
		return taskCtx.Err()
	})

	cancel()
	got := waitFor(t, testee, id, domain.TaskFailed)
	if got.Reason != context.Canceled.Error() {
		t.Errorf("unexpected reason: %s", got.Reason)
	}
}
