package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env          string `env:"ENV" env-required:"true"`
	HTTP         HTTPConfig
	Storage      StorageConfig
	Postgres     PostgresConfig
	Notification NotificationConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// StorageConfig selects where the task snapshot lives. Slot is the name
// of the single key the whole list is written under.
type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"file"`
	Slot   string `env:"STORAGE_SLOT" env-default:"tasks"`
	Dir    string `env:"STORAGE_DIR" env-default:"data"`
}

// PostgresConfig is only read when Storage.Driver is "postgres".
type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE" env-default:"tasklist"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type NotificationConfig struct {
	TTL time.Duration `env:"NOTIFICATION_TTL" env-default:"3s"`
}
