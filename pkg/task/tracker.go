// Package task keeps progress of long-running sweeps for pollers.
package task

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/Clapiton/socials/pkg/domain"
)

// Tracker is the registry of task progress keyed by task type.
// Create one per process and pass it to whatever reports progress.
type Tracker struct {
	mu    sync.Mutex
	tasks map[string]*domain.TaskStatus
	now   func() time.Time
}

// NewTracker makes an empty tracker
func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*domain.TaskStatus), now: time.Now}
}

// Start resets the task to running with a fresh run id and returns that id.
// A task of the same type already running is overwritten.
func (t *Tracker) Start(taskType string, total int, message string) string {
	runID := uuid.NewString()
	now := t.now()

	t.mu.Lock()
	prev, wasRunning := t.tasks[taskType]
	wasRunning = wasRunning && prev.Status == domain.TaskRunning
	t.tasks[taskType] = &domain.TaskStatus{
		Type:      taskType,
		RunID:     runID,
		Status:    domain.TaskRunning,
		Message:   message,
		Total:     max(total, 0),
		StartedAt: now,
		UpdatedAt: now,
	}
	t.mu.Unlock()

	if wasRunning {
		lgr.Printf("[WARN] task %s restarted while running, previous progress dropped", taskType)
	}
	return runID
}

// SetTotal changes the expected number of steps once it is known, keeping current progress
func (t *Tracker) SetTotal(taskType string, total int, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.tasks[taskType]
	if !ok {
		return
	}
	st.Total = max(total, 0)
	if message != "" {
		st.Message = message
	}
	st.Percent = percent(st.Current, st.Total)
	st.UpdatedAt = t.now()
}

// Update sets the current step and message, empty message keeps the previous one.
// Updating a task that was never started only logs a warning.
func (t *Tracker) Update(taskType string, current int, message string) {
	t.mu.Lock()
	st, ok := t.tasks[taskType]
	if ok {
		st.Current = current
		if message != "" {
			st.Message = message
		}
		st.Percent = percent(current, st.Total)
		st.UpdatedAt = t.now()
	}
	t.mu.Unlock()

	if !ok {
		lgr.Printf("[WARN] progress update for task %s which was never started", taskType)
	}
}

// Complete marks the task finished with result, percent is forced to 100
func (t *Tracker) Complete(taskType, message string, result any) {
	t.finish(taskType, func(st *domain.TaskStatus) {
		st.Status = domain.TaskCompleted
		st.Message = message
		st.Percent = 100
		st.Result = result
	})
}

// Fail marks the task failed with err as the message
func (t *Tracker) Fail(taskType string, err error) {
	msg := "Error: unknown error"
	if err != nil {
		msg = "Error: " + err.Error()
	}
	t.finish(taskType, func(st *domain.TaskStatus) {
		st.Status = domain.TaskFailed
		st.Message = msg
	})
}

func (t *Tracker) finish(taskType string, fn func(st *domain.TaskStatus)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.tasks[taskType]
	if !ok {
		// a sweep can fail before it ever started, keep the outcome visible
		st = &domain.TaskStatus{Type: taskType, StartedAt: t.now()}
		t.tasks[taskType] = st
	}
	fn(st)
	st.UpdatedAt = t.now()
}

// Status returns a copy of one task's status, idle for unknown types
func (t *Tracker) Status(taskType string) domain.TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.tasks[taskType]; ok {
		return *st
	}
	return domain.TaskStatus{Type: taskType, Status: domain.TaskIdle}
}

// All returns copies of every known task sorted by type
func (t *Tracker) All() []domain.TaskStatus {
	t.mu.Lock()
	res := make([]domain.TaskStatus, 0, len(t.tasks))
	for _, st := range t.tasks {
		res = append(res, *st)
	}
	t.mu.Unlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Type < res[j].Type })
	return res
}

// IsRunning reports whether a task of this type is currently running
func (t *Tracker) IsRunning(taskType string) bool {
	return t.Status(taskType).Status == domain.TaskRunning
}

// percent rounds half to even, 1 of 8 is 12 and 3 of 8 is 38
func percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(100 * float64(current) / float64(total)))
}
