package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Endpoint is the homework status API polled by the service.
	Endpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	// RetryPeriod is the delay between two poll iterations.
	RetryPeriod = 600 * time.Second
	// RequestTimeout bounds a single call to the status API.
	RequestTimeout = 30 * time.Second
)

// Names of the required environment variables, in reporting order.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Practicum struct {
		Token    string
		Endpoint string
		Timeout  time.Duration
	}
	Telegram struct {
		Token     string
		ChatID    string
		RateLimit int
	}
	Poll struct {
		RetryPeriod time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
	API struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
}

// ConfigurationError reports required settings that are absent at startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Отсутствуют переменные окружения: %s", strings.Join(e.Missing, ", "))
}

// ValidateCredentials checks that every credential is set and names all
// of the missing ones at once.
func ValidateCredentials(practicumToken, telegramToken, chatID string) error {
	missing := []string{}
	if practicumToken == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if telegramToken == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if chatID == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// Load reads environment variables, validates credentials, applies defaults,
// and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (Config, error) {
	var cfg Config

	cfg.Practicum.Token = os.Getenv(EnvPracticumToken)
	cfg.Telegram.Token = os.Getenv(EnvTelegramToken)
	cfg.Telegram.ChatID = os.Getenv(EnvTelegramChatID)

	if err := ValidateCredentials(cfg.Practicum.Token, cfg.Telegram.Token, cfg.Telegram.ChatID); err != nil {
		return Config{}, err
	}

	cfg.Practicum.Endpoint = Endpoint
	cfg.Practicum.Timeout = RequestTimeout
	cfg.Poll.RetryPeriod = RetryPeriod

	if rl, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_LIMIT")); err == nil {
		cfg.Telegram.RateLimit = rl
	}

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	cfg.API.Addr = os.Getenv("API_ADDR")
	cfg.DB.DSN = os.Getenv("DB_DSN")
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	// Apply defaults
	if cfg.Telegram.RateLimit <= 0 {
		cfg.Telegram.RateLimit = 1
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "homework_notifications"
	}

	return cfg, nil
}
