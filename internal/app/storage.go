package app

import (
	"context"

	"github.com/adanyl0v/go-tasklist/internal/config"
	"github.com/adanyl0v/go-tasklist/internal/services"
	"github.com/adanyl0v/go-tasklist/internal/storage"
)

var globalSlot storage.Slot

func MustOpenSlot() {
	cfg := config.Global().Storage

	switch cfg.Driver {
	case config.StorageDriverFile:
		slot, err := storage.NewFileSlot(componentLogger("storage"), cfg.Dir, cfg.Slot)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("dir", cfg.Dir).
				Msg("failed to open file slot")
			panic(err)
		}
		globalSlot = slot
	case config.StorageDriverPostgres:
		globalSlot = storage.NewPostgresSlot(componentLogger("storage"), mustConnectPostgres(), cfg.Slot)
	case config.StorageDriverMemory:
		globalLogger.Warn().Msg("using in-memory slot, tasks will not survive a restart")
		globalSlot = storage.NewMemorySlot(cfg.Slot)
	}

	globalLogger.Info().
		Str("driver", cfg.Driver).
		Str("slot", cfg.Slot).
		Msg("opened storage slot")
}

func CloseSlot() {
	err := globalSlot.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage slot")
		return
	}
	globalLogger.Info().Msg("closed storage slot")
}

// MustLoadController builds the session's controller and loads the
// snapshot. A corrupt snapshot stops startup instead of being
// overwritten by the next mutation.
func MustLoadController() *services.Controller {
	tasks := services.NewTaskService(componentLogger("tasks"), globalSlot)
	err := tasks.Load(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load tasks")
		panic(err)
	}

	notifications := services.NewNotificationService(componentLogger("notifications"), config.Global().Notification.TTL)
	return services.NewController(componentLogger("controller"), tasks, notifications)
}
