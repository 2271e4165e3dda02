package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/storage"
)

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type taskServiceImpl struct {
	logger zerolog.Logger
	slot   storage.Slot
	now    func() time.Time

	mu    sync.RWMutex
	tasks []models.Task
}

func NewTaskService(
	logger zerolog.Logger,
	slot storage.Slot,
) TaskService {
	return newTaskService(logger, slot, time.Now)
}

func newTaskService(logger zerolog.Logger, slot storage.Slot, now func() time.Time) *taskServiceImpl {
	return &taskServiceImpl{
		logger: logger,
		slot:   slot,
		now:    now,
		tasks:  []models.Task{},
	}
}

func (s *taskServiceImpl) Load(ctx context.Context) error {
	tasks, err := s.readSnapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Info().
		Str("slot", s.slot.Name()).
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

// refreshLocked picks up writes made to the slot by another process,
// such as cmd/tasks running next to the server, so a mutation never
// overwrites tasks it has not seen.
func (s *taskServiceImpl) refreshLocked(ctx context.Context) error {
	tasks, err := s.readSnapshot(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

func (s *taskServiceImpl) readSnapshot(ctx context.Context) ([]models.Task, error) {
	payload, found, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("slot", s.slot.Name()).
			Msg("failed to load snapshot")
		return nil, err
	}

	tasks := []models.Task{}
	if !found {
		return tasks, nil
	}

	err = json.Unmarshal(payload, &tasks)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("slot", s.slot.Name()).
			Msg("failed to decode snapshot")
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *taskServiceImpl) Add(ctx context.Context, params AddTaskParams) (*models.Task, error) {
	text := strings.TrimSpace(params.Text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}

	now := s.now()

	date := strings.TrimSpace(params.Date)
	if date == "" {
		date = now.UTC().Format(time.DateOnly)
	}
	_, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskDate, date)
	}

	priority := params.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskPriority, priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.refreshLocked(ctx)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:        s.mintIDLocked(now),
		Text:      text,
		Date:      date,
		Priority:  priority,
		Completed: false,
		CreatedAt: now.UTC().Format(createdAtLayout),
	}

	next := append(slices.Clone(s.tasks), task)
	err = s.persist(ctx, next)
	if err != nil {
		return nil, err
	}
	s.tasks = next

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("priority", string(task.Priority)).
		Msg("created task")
	return &task, nil
}

// mintIDLocked derives the id from the clock and bumps it past the
// largest existing id when two tasks land on the same millisecond.
func (s *taskServiceImpl) mintIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func (s *taskServiceImpl) Toggle(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.refreshLocked(ctx)
	if err != nil {
		return false, err
	}

	idx := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if idx < 0 {
		s.logger.Debug().
			Int64("task_id", id).
			Msg("task to toggle not found")
		return false, nil
	}

	next := slices.Clone(s.tasks)
	next[idx].Completed = !next[idx].Completed

	err = s.persist(ctx, next)
	if err != nil {
		return false, err
	}
	s.tasks = next

	s.logger.Info().
		Int64("task_id", id).
		Bool("completed", next[idx].Completed).
		Msg("toggled task")
	return true, nil
}

func (s *taskServiceImpl) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.refreshLocked(ctx)
	if err != nil {
		return false, err
	}

	next := slices.DeleteFunc(slices.Clone(s.tasks), func(t models.Task) bool { return t.ID == id })
	removed := len(next) != len(s.tasks)

	err = s.persist(ctx, next)
	if err != nil {
		return false, err
	}
	s.tasks = next

	if !removed {
		s.logger.Debug().
			Int64("task_id", id).
			Msg("task to remove not found")
		return false, nil
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return true, nil
}

func (s *taskServiceImpl) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tasks)
}

func (s *taskServiceImpl) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// persist writes the full list. Callers commit next only on success.
func (s *taskServiceImpl) persist(ctx context.Context, next []models.Task) error {
	payload, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to encode snapshot")
		return err
	}

	err = s.slot.Save(ctx, payload)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("slot", s.slot.Name()).
			Msg("failed to persist snapshot")
		return fmt.Errorf("persist snapshot: %w", err)
	}

	s.logger.Debug().
		Str("slot", s.slot.Name()).
		Int("count", len(next)).
		Msg("persisted snapshot")
	return nil
}
