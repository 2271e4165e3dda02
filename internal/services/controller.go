package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/models"
)

const (
	msgEmptyTask       = "Please enter a task!"
	msgInvalidDate     = "Please pick a valid date!"
	msgInvalidPriority = "Please pick a valid priority!"
	msgTaskAdded       = "Task added successfully!"
	msgTaskDeleted     = "Task deleted!"
	msgSaveFailed      = "Could not save your tasks, please try again."
)

// Controller turns user actions into store mutations and user-facing
// notifications. Actions are serialized: each one finishes before the
// next starts.
type Controller struct {
	logger        zerolog.Logger
	tasks         TaskService
	notifications NotificationService

	mu     sync.Mutex
	filter models.Filter
}

type View struct {
	Filter        models.Filter         `json:"filter"`
	Tasks         []models.Task         `json:"tasks"`
	Stats         models.Stats          `json:"stats"`
	Notifications []models.Notification `json:"notifications"`
}

func NewController(
	logger zerolog.Logger,
	tasks TaskService,
	notifications NotificationService,
) *Controller {
	return &Controller{
		logger:        logger,
		tasks:         tasks,
		notifications: notifications,
		filter:        models.FilterAll,
	}
}

func (c *Controller) AddTask(ctx context.Context, params AddTaskParams) (*models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, err := c.tasks.Add(ctx, params)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Msg("rejected new task")

		switch {
		case errors.Is(err, ErrEmptyTaskText):
			c.notifications.Push(models.SeverityError, msgEmptyTask)
		case errors.Is(err, ErrInvalidTaskDate):
			c.notifications.Push(models.SeverityError, msgInvalidDate)
		case errors.Is(err, ErrInvalidTaskPriority):
			c.notifications.Push(models.SeverityError, msgInvalidPriority)
		default:
			c.notifications.Push(models.SeverityError, msgSaveFailed)
		}
		return nil, err
	}

	c.notifications.Push(models.SeveritySuccess, msgTaskAdded)
	return task, nil
}

func (c *Controller) ToggleTask(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	toggled, err := c.tasks.Toggle(ctx, id)
	if err != nil {
		c.notifications.Push(models.SeverityError, msgSaveFailed)
		return false, err
	}
	return toggled, nil
}

func (c *Controller) DeleteTask(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := c.tasks.Remove(ctx, id)
	if err != nil {
		c.notifications.Push(models.SeverityError, msgSaveFailed)
		return false, err
	}

	c.notifications.Push(models.SeverityInfo, msgTaskDeleted)
	return removed, nil
}

func (c *Controller) SetFilter(filter models.Filter) error {
	if !filter.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = filter
	c.logger.Debug().
		Str("filter", string(filter)).
		Msg("changed filter")
	return nil
}

func (c *Controller) Filter() models.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filter
}

// View computes what the presenters show for the current filter.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewLocked(c.filter)
}

// ViewFor is View with an explicit filter that does not change the
// current one.
func (c *Controller) ViewFor(filter models.Filter) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewLocked(filter)
}

func (c *Controller) viewLocked(filter models.Filter) View {
	return View{
		Filter:        filter,
		Tasks:         ComputeView(c.tasks.Tasks(), filter),
		Stats:         c.tasks.Stats(),
		Notifications: c.notifications.Active(),
	}
}

func (c *Controller) Stats() models.Stats {
	return c.tasks.Stats()
}

func (c *Controller) Notifications() []models.Notification {
	return c.notifications.Active()
}
