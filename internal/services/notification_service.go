package services

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/models"
)

type notificationServiceImpl struct {
	logger zerolog.Logger
	ttl    time.Duration

	mu    sync.Mutex
	items []models.Notification
}

func NewNotificationService(logger zerolog.Logger, ttl time.Duration) NotificationService {
	return &notificationServiceImpl{
		logger: logger,
		ttl:    ttl,
	}
}

func (s *notificationServiceImpl) Push(severity models.Severity, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()

	time.AfterFunc(s.ttl, func() { s.dismiss(n.ID) })

	s.logger.Debug().
		Str("notification_id", n.ID).
		Str("severity", string(severity)).
		Str("message", message).
		Msg("pushed notification")
	return n
}

func (s *notificationServiceImpl) dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(n models.Notification) bool { return n.ID == id })
}

func (s *notificationServiceImpl) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Notification{}, s.items...)
}
