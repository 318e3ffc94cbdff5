package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinCompletion = 0
	MaxCompletion = 100
)

// Task - единственная сущность todo-списка
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"created_date"`
	Completion  int       `json:"completion"`
	Done        bool      `json:"done"`
}

// NewTask builds a task with a fresh id, stamped at createdAt.
func NewTask(title, description string, createdAt time.Time) Task {
	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedDate: createdAt,
	}
}

// ValidCompletion reports whether v is an allowed completion percentage.
func ValidCompletion(v int) bool {
	return v >= MinCompletion && v <= MaxCompletion
}

// MarkDone sets the done flag. Marking a task done always forces completion to 100.
func (t *Task) MarkDone(done bool) {
	t.Done = done
	if done {
		t.Completion = MaxCompletion
	}
}
