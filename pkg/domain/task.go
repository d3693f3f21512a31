package domain

// TaskStatus is the observable state of a background task.
//
// Completed and Failed are terminal; a task never leaves a terminal state.
type TaskStatus string

const (
	TaskQueued     TaskStatus = "queued"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"

	// reported for task ids the tracker has never seen.
	TaskNotFound TaskStatus = "not_found"
)

func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task is the progress record of one asynchronous deploy/undeploy call.
type Task struct {
	Id     string
	Status TaskStatus

	// failure message; empty unless Status == TaskFailed.
	Reason string
}
