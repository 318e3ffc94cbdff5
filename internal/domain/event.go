package domain

import "time"

// Типы событий, рассылаемых подписчикам
const (
	EventTaskCreated       = "task_created"
	EventTaskUpdated       = "task_updated"
	EventTaskDeleted       = "task_deleted"
	EventTasksCleared      = "tasks_cleared"
	EventTaskCompletionSet = "task_completion_set"
	EventTaskDoneSet       = "task_done_set"
)

// TaskEvent describes a single change to the task collection.
type TaskEvent struct {
	Type    string    `json:"type"`
	Task    *Task     `json:"task,omitempty"`
	Removed int       `json:"removed,omitempty"`
	At      time.Time `json:"at"`
}
