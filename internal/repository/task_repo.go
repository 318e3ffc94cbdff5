package repository

import (
	"errors"
	"strings"
	"sync"
	"time"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrDuplicateTitle    = errors.New("title already exists")
	ErrInvalidCompletion = errors.New("completion must be between 0 and 100")
)

// TaskRepository keeps tasks in process memory. Data is lost on restart.
// A single RWMutex guards the whole collection; every query is a linear scan.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []*domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// Create inserts task unless another task already has the same title (case-insensitive).
func (r *TaskRepository) Create(task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if strings.EqualFold(t.Title, task.Title) {
			return ErrDuplicateTitle
		}
	}

	stored := task
	r.tasks = append(r.tasks, &stored)
	return nil
}

// GetAll returns every task in insertion order.
func (r *TaskRepository) GetAll() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		res = append(res, *t)
	}
	return res
}

func (r *TaskRepository) GetByID(id uuid.UUID) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, _ := r.find(id)
	if t == nil {
		return domain.Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// Update overwrites title and description and restamps the creation date with now.
// Title uniqueness is not re-checked here.
func (r *TaskRepository) Update(id uuid.UUID, title, description string, now time.Time) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, _ := r.find(id)
	if t == nil {
		return domain.Task{}, ErrTaskNotFound
	}

	t.Title = title
	t.Description = description
	t.CreatedDate = now
	return *t, nil
}

// Delete removes the task and returns it as it was at removal time.
func (r *TaskRepository) Delete(id uuid.UUID) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, idx := r.find(id)
	if t == nil {
		return domain.Task{}, ErrTaskNotFound
	}

	r.tasks = append(r.tasks[:idx], r.tasks[idx+1:]...)
	return *t, nil
}

// DeleteAll empties the collection and returns the number of removed tasks.
func (r *TaskRepository) DeleteAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.tasks)
	r.tasks = nil
	return n
}

// SetCompletion validates the range before looking the task up, so an out-of-range
// value reports ErrInvalidCompletion even for unknown ids.
func (r *TaskRepository) SetCompletion(id uuid.UUID, value int) (domain.Task, error) {
	if !domain.ValidCompletion(value) {
		return domain.Task{}, ErrInvalidCompletion
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, _ := r.find(id)
	if t == nil {
		return domain.Task{}, ErrTaskNotFound
	}

	t.Completion = value
	return *t, nil
}

func (r *TaskRepository) SetDone(id uuid.UUID, done bool) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, _ := r.find(id)
	if t == nil {
		return domain.Task{}, ErrTaskNotFound
	}

	t.MarkDone(done)
	return *t, nil
}

func (r *TaskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// IncomingTasks returns the tasks, other than ref, whose calendar date lies exactly
// |offsetDays| days away from ref's. The distance is absolute: with offset 1 a task
// dated the day before ref matches as well as one dated the day after.
func (r *TaskRepository) IncomingTasks(ref domain.Task, offsetDays int) []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.incoming(ref, offsetDays)
}

// ThisWeekTasks returns the tasks, other than ref, created in ref's Mon-Sun week.
func (r *TaskRepository) ThisWeekTasks(ref domain.Task) []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.thisWeek(ref)
}

// IncomingTasksOf resolves the reference task and runs IncomingTasks under one lock,
// so the reference cannot disappear between lookup and scan.
func (r *TaskRepository) IncomingTasksOf(refID uuid.UUID, offsetDays int) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, _ := r.find(refID)
	if ref == nil {
		return nil, ErrTaskNotFound
	}
	return r.incoming(*ref, offsetDays), nil
}

// ThisWeekTasksOf is the single-lock counterpart of ThisWeekTasks.
func (r *TaskRepository) ThisWeekTasksOf(refID uuid.UUID) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, _ := r.find(refID)
	if ref == nil {
		return nil, ErrTaskNotFound
	}
	return r.thisWeek(*ref), nil
}

func (r *TaskRepository) incoming(ref domain.Task, offsetDays int) []domain.Task {
	if offsetDays < 0 {
		offsetDays = -offsetDays
	}
	return r.filter(ref, func(t *domain.Task) bool {
		return domain.DaysApart(t.CreatedDate, ref.CreatedDate) == offsetDays
	})
}

func (r *TaskRepository) thisWeek(ref domain.Task) []domain.Task {
	return r.filter(ref, func(t *domain.Task) bool {
		return domain.SameWeek(t.CreatedDate, ref.CreatedDate)
	})
}

// filter must be called with r.mu held.
func (r *TaskRepository) filter(ref domain.Task, match func(*domain.Task) bool) []domain.Task {
	res := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.ID == ref.ID {
			continue
		}
		if match(t) {
			res = append(res, *t)
		}
	}
	return res
}

// find must be called with r.mu held. Returns nil, -1 when id is unknown.
func (r *TaskRepository) find(id uuid.UUID) (*domain.Task, int) {
	for i, t := range r.tasks {
		if t.ID == id {
			return t, i
		}
	}
	return nil, -1
}
