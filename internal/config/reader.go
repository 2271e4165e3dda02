package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values cleanenv cannot check through tags alone.
func (cfg *Config) Validate() error {
	switch cfg.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", cfg.Env)
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	if cfg.Storage.Slot == "" {
		return fmt.Errorf("storage slot must not be empty")
	}
	if cfg.Notification.TTL <= 0 {
		return fmt.Errorf("notification ttl must be positive, got %s", cfg.Notification.TTL)
	}
	return nil
}
