package service

import (
	"context"
	"fmt"
	"time"

	"todo_api/internal/domain"
	"todo_api/internal/repository"

	"github.com/google/uuid"
)

const (
	SameDayOffset = 0
	NextDayOffset = 1
)

// TaskService sits between the HTTP handlers and the in-memory store.
// It stamps new tasks, publishes change events and writes the audit trail.
type TaskService struct {
	repo   *repository.TaskRepository
	events EventPublisher
	audit  *AuditService
	now    func() time.Time
}

func NewTaskService(repo *repository.TaskRepository, events EventPublisher, audit *AuditService) *TaskService {
	if events == nil {
		events = NoopPublisher{}
	}
	if audit == nil {
		audit = NewAuditService()
	}
	return &TaskService{
		repo:   repo,
		events: events,
		audit:  audit,
		now:    time.Now,
	}
}

// WithClock replaces the time source, returning the service for chaining.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) List(ctx context.Context) []domain.Task {
	return s.repo.GetAll()
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, title, description string) (domain.Task, error) {
	task := domain.NewTask(title, description, s.now())
	if err := s.repo.Create(task); err != nil {
		return domain.Task{}, fmt.Errorf("create task %q: %w", title, err)
	}

	s.changed(ctx, domain.EventTaskCreated, task, map[string]any{"title": title})
	return task, nil
}

// Update replaces title and description; the task's date moves to now.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, title, description string) (domain.Task, error) {
	task, err := s.repo.Update(id, title, description, s.now())
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	s.changed(ctx, domain.EventTaskUpdated, task, map[string]any{"title": title})
	return task, nil
}

func (s *TaskService) SetCompletion(ctx context.Context, id uuid.UUID, completion int) (domain.Task, error) {
	task, err := s.repo.SetCompletion(id, completion)
	if err != nil {
		return domain.Task{}, fmt.Errorf("set completion of task %s: %w", id, err)
	}

	s.changed(ctx, domain.EventTaskCompletionSet, task, map[string]any{"completion": completion})
	return task, nil
}

func (s *TaskService) SetDone(ctx context.Context, id uuid.UUID, done bool) (domain.Task, error) {
	task, err := s.repo.SetDone(id, done)
	if err != nil {
		return domain.Task{}, fmt.Errorf("set done of task %s: %w", id, err)
	}

	s.changed(ctx, domain.EventTaskDoneSet, task, map[string]any{"done": done})
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	task, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.changed(ctx, domain.EventTaskDeleted, task, nil)
	return nil
}

// DeleteAll clears the store and returns the number of removed tasks.
func (s *TaskService) DeleteAll(ctx context.Context) int {
	n := s.repo.DeleteAll()

	TasksStored.Set(0)
	s.audit.Log(ctx, domain.EventTasksCleared, uuid.Nil, map[string]any{"removed": n})
	s.events.Publish(domain.TaskEvent{Type: domain.EventTasksCleared, Removed: n, At: s.now()})
	return n
}

// SameDayTasks lists tasks created on the reference task's calendar date.
func (s *TaskService) SameDayTasks(ctx context.Context, refID uuid.UUID) ([]domain.Task, error) {
	return s.incoming(refID, SameDayOffset)
}

// NextDayTasks lists tasks created one calendar day away from the reference task,
// on either side of it.
func (s *TaskService) NextDayTasks(ctx context.Context, refID uuid.UUID) ([]domain.Task, error) {
	return s.incoming(refID, NextDayOffset)
}

// ThisWeekTasks lists tasks created in the reference task's Mon-Sun week.
func (s *TaskService) ThisWeekTasks(ctx context.Context, refID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.repo.ThisWeekTasksOf(refID)
	if err != nil {
		return nil, fmt.Errorf("week tasks of %s: %w", refID, err)
	}
	return tasks, nil
}

func (s *TaskService) incoming(refID uuid.UUID, offset int) ([]domain.Task, error) {
	tasks, err := s.repo.IncomingTasksOf(refID, offset)
	if err != nil {
		return nil, fmt.Errorf("incoming tasks of %s (offset %d): %w", refID, offset, err)
	}
	return tasks, nil
}

func (s *TaskService) Count() int {
	return s.repo.Count()
}

func (s *TaskService) changed(ctx context.Context, kind string, task domain.Task, details map[string]any) {
	TasksStored.Set(float64(s.repo.Count()))
	s.audit.Log(ctx, kind, task.ID, details)
	s.events.Publish(domain.TaskEvent{Type: kind, Task: &task, At: s.now()})
}
