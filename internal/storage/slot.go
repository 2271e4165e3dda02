package storage

import (
	"context"
	"errors"
)

var ErrSlotClosed = errors.New("slot closed")

// Slot is a single named key holding the whole serialized task list.
// Every Save replaces the previous payload.
type Slot interface {
	Name() string
	// Load returns found == false when nothing was ever saved.
	Load(ctx context.Context) (payload []byte, found bool, err error)
	Save(ctx context.Context, payload []byte) error
	Close() error
}
