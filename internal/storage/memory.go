package storage

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu      sync.Mutex
	name    string
	payload []byte
	found   bool
	closed  bool
}

func NewMemorySlot(name string) *MemorySlot {
	return &MemorySlot{name: name}
}

func (s *MemorySlot) Name() string {
	return s.name
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrSlotClosed
	}
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.payload...), true, nil
}

func (s *MemorySlot) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSlotClosed
	}
	s.payload = append([]byte(nil), payload...)
	s.found = true
	return nil
}

func (s *MemorySlot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
