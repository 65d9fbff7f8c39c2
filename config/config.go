package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config stores the application configuration.
// Database and token settings are required; only host and port have defaults.
type Config struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port string `envconfig:"PORT" default:"5000"`

	DBHost     string `envconfig:"MYSQL_HOST" required:"true"`
	DBPort     string `envconfig:"MYSQL_PORT" required:"true"`
	DBUser     string `envconfig:"MYSQL_USER" required:"true"`
	DBPassword string `envconfig:"MYSQL_PASSWORD" required:"true"`
	DBName     string `envconfig:"MYSQL_DATABASE" required:"true"`

	AccessTokenKey  string `envconfig:"ACCESS_TOKEN_KEY" required:"true"`
	RefreshTokenKey string `envconfig:"REFRESH_TOKEN_KEY" required:"true"`
	AccessTokenAge  int    `envconfig:"ACCESS_TOKEN_AGE" required:"true"` // seconds

	// Redis配置
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`
	ExportQueue   string `envconfig:"EXPORT_QUEUE" default:"export:playlists"`

	// MinIO配置
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"openmusic"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL"`
	MinioPublicURL string `envconfig:"MINIO_PUBLIC_URL"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSize    int    `envconfig:"LOG_MAX_SIZE" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	LogMaxAge     int    `envconfig:"LOG_MAX_AGE" default:"30"`
	LogCompress   bool   `envconfig:"LOG_COMPRESS"`
}

// Load loads configuration from environment variables (via .env file).
func Load() (*Config, error) {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables.")
	}

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AccessTokenAge <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_AGE must be a positive number of seconds, got %d", cfg.AccessTokenAge)
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// AccessTokenMaxAge is ACCESS_TOKEN_AGE as a duration.
func (c *Config) AccessTokenMaxAge() time.Duration {
	return time.Duration(c.AccessTokenAge) * time.Second
}

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// MinioEnabled reports whether object storage is configured.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}

// SMTPEnabled reports whether export mails can be delivered.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}
