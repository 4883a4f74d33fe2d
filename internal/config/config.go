package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers for the record store.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Probe    ProbeConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

// UploadConfig controls local staging of multipart files.
type UploadConfig struct {
	TempDir  string `envconfig:"UPLOAD_TEMP_DIR" default:"/tmp/vidshare"`
	MaxBytes int64  `envconfig:"UPLOAD_MAX_BYTES" default:"536870912"`
}

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"3"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"vidshare"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"vidshare"`
	DBName   string `envconfig:"POSTGRES_DB" default:"vidshare"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint      string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey     string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey     string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket        string `envconfig:"MINIO_BUCKET" default:"vidshare"`
	UseSSL        bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL"`
}

type RedisConfig struct {
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int           `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RabbitMQConfig struct {
	Host         string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port         int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User         string `envconfig:"RABBITMQ_USER" default:"vidshare"`
	Password     string `envconfig:"RABBITMQ_PASSWORD" default:"vidshare"`
	VHost        string `envconfig:"RABBITMQ_VHOST" default:"/"`
	ReclaimQueue string `envconfig:"RECLAIM_QUEUE" default:"asset_reclaim"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type ProbeConfig struct {
	Timeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings envconfig cannot check on its own.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: want %q or %q", c.Storage.Driver, StorageDriverPostgres, StorageDriverMemory)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("invalid UPLOAD_MAX_BYTES %d: must be positive", c.Upload.MaxBytes)
	}
	if c.Worker.MaxRetries < 0 {
		return fmt.Errorf("invalid WORKER_MAX_RETRIES %d: must not be negative", c.Worker.MaxRetries)
	}
	return nil
}
