package service

import "todo_api/internal/domain"

// EventPublisher receives every successful change to the task collection.
type EventPublisher interface {
	Publish(event domain.TaskEvent)
}

// NoopPublisher drops events; used when nobody subscribes.
type NoopPublisher struct{}

func (NoopPublisher) Publish(domain.TaskEvent) {}
