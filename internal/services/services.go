package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-tasklist/internal/models"
)

var (
	ErrEmptyTaskText       = errors.New("task text is empty")
	ErrInvalidTaskDate     = errors.New("invalid task date")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrCorruptSnapshot     = errors.New("corrupt task snapshot")
)

type TaskService interface {
	// Load replaces the in-memory list with the persisted snapshot.
	//
	// A missing snapshot yields an empty list. It returns
	// ErrCorruptSnapshot if the snapshot cannot be decoded.
	Load(ctx context.Context) error

	// Add creates a task, appends it and persists the whole list.
	//
	// It returns ErrEmptyTaskText if the text is blank after trimming,
	// ErrInvalidTaskDate if the date is not YYYY-MM-DD or
	// ErrInvalidTaskPriority if the priority is unknown. The list is
	// left untouched on any error.
	Add(ctx context.Context, params AddTaskParams) (*models.Task, error)

	// Toggle flips the completion flag of the task with the given id.
	//
	// An unknown id is not an error: it reports false and persists nothing.
	Toggle(ctx context.Context, id int64) (bool, error)

	// Remove deletes the task with the given id and persists the list
	// whether or not the id was present.
	Remove(ctx context.Context, id int64) (bool, error)

	// Tasks returns a copy of the list in insertion order.
	Tasks() []models.Task

	Stats() models.Stats
}

type NotificationService interface {
	// Push shows a message until the configured TTL elapses.
	// Pushed notifications stack and cannot be dismissed early.
	Push(severity models.Severity, message string) models.Notification

	// Active returns the live notifications, oldest first.
	Active() []models.Notification
}

type AddTaskParams struct {
	Text     string
	Date     string
	Priority models.Priority
}
