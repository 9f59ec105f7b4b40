package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session / 2FA Config
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	TwoFactorCodeTTL time.Duration `env:"TWO_FACTOR_CODE_TTL" envDefault:"10m"`

	// Mail Config
	SendGridAPIKey      string `env:"SENDGRID_API_KEY"`
	MailFromName        string `env:"MAIL_FROM_NAME" envDefault:"BVMS"`
	MailFromEmail       string `env:"MAIL_FROM_EMAIL" envDefault:"no-reply@bvms.local"`
	IncidentNotifyEmail string `env:"INCIDENT_NOTIFY_EMAIL"`

	// Notification worker Config
	NotifyMaxRetries int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	NotifyBaseDelay  time.Duration `env:"NOTIFY_BASE_DELAY" envDefault:"2s"`

	// Uploads Config
	UploadDir        string `env:"UPLOAD_DIR" envDefault:"storage/uploads"`
	MaxImageSizeByte int64  `env:"MAX_IMAGE_SIZE_BYTES" envDefault:"2097152"`

	// Location retention Config
	LocationRetentionDays int    `env:"LOCATION_RETENTION_DAYS" envDefault:"0"`
	RetentionCronSpec     string `env:"RETENTION_CRON_SPEC" envDefault:"0 3 * * *"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		SessionTTL:            getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		TwoFactorCodeTTL:      getEnvAsDuration("TWO_FACTOR_CODE_TTL", 10*time.Minute),
		SendGridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		MailFromName:          getEnv("MAIL_FROM_NAME", "BVMS"),
		MailFromEmail:         getEnv("MAIL_FROM_EMAIL", "no-reply@bvms.local"),
		IncidentNotifyEmail:   os.Getenv("INCIDENT_NOTIFY_EMAIL"),
		NotifyMaxRetries:      getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:       getEnvAsDuration("NOTIFY_BASE_DELAY", 2*time.Second),
		UploadDir:             getEnv("UPLOAD_DIR", "storage/uploads"),
		MaxImageSizeByte:      getEnvAsInt64("MAX_IMAGE_SIZE_BYTES", 2*1024*1024),
		LocationRetentionDays: getEnvAsInt("LOCATION_RETENTION_DAYS", 0),
		RetentionCronSpec:     getEnv("RETENTION_CRON_SPEC", "0 3 * * *"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 возвращает значение переменной окружения как int64 или значение по умолчанию
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
