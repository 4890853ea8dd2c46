package domain

import "time"

// TaskState is the lifecycle state of a tracked task
type TaskState string

// task states
const (
	TaskIdle      TaskState = "idle"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
)

// task types
const (
	TaskCollect = "collect"
	TaskAnalyze = "analyze"
)

// TaskStatus is the progress snapshot of one named long-running task
type TaskStatus struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Status    TaskState `json:"status"`
	Message   string    `json:"message,omitempty"`
	Current   int       `json:"current"`
	Total     int       `json:"total"`
	Percent   int       `json:"percent"`
	Result    any       `json:"result,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
