// Package task runs long operations in the background and remembers
// how they went.
package task

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/modelplane/modelplane/pkg/domain"
)

// Tracker launches background work and reports its status.
//
// Statuses live in memory and do not survive a restart; a client asking
// about a task submitted before the restart gets NotFound.
type Tracker interface {
	// Submit starts run in the background and returns the id to poll.
	Submit(run func(ctx context.Context) error) string

	// Get reports the task's current state. Unknown ids get a task
	// with status NotFound.
	Get(id string) domain.Task
}

type tracker struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task

	// base context for submitted work, so that shutdown reaches
	// running tasks.
	ctx context.Context
}

var _ Tracker = &tracker{}

func New(ctx context.Context) Tracker {
	return &tracker{
		tasks: map[string]domain.Task{},
		ctx:   ctx,
	}
}

func (t *tracker) Submit(run func(ctx context.Context) error) string {
	id := uuid.NewString()

	t.mu.Lock()
	t.tasks[id] = domain.Task{Id: id, Status: domain.TaskQueued}
	t.mu.Unlock()

	go func() {
		t.set(id, domain.TaskInProgress, "")
		if err := run(t.ctx); err != nil {
			t.set(id, domain.TaskFailed, err.Error())
			return
		}
		t.set(id, domain.TaskCompleted, "")
	}()

	return id
}

func (t *tracker) Get(id string) domain.Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if task, ok := t.tasks[id]; ok {
		return task
	}
	return domain.Task{Id: id, Status: domain.TaskNotFound}
}

func (t *tracker) set(id string, status domain.TaskStatus, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.tasks[id]; ok && prev.Status.Terminal() {
		return
	}
	t.tasks[id] = domain.Task{Id: id, Status: status, Reason: reason}
}
