package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"ai-playground/internal/logger"
)

// DefaultModel - ревизия модели SDXL, на которую рассчитан фиксированный набор параметров.
const DefaultModel = "stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"

// ErrMissingAPIToken - токен Replicate не найден ни в окружении, ни в секретах.
var ErrMissingAPIToken = errors.New("replicate api token is not configured")

// Config структура для хранения всей конфигурации приложения.
type Config struct {
	AppEnv     string `env:"APP_ENV" env-default:"development"`
	ServerPort string `env:"SERVER_PORT" env-default:"3000"`
	SecretsDir string `env:"SECRETS_DIR" env-default:"/run/secrets"`
	Logger     logger.Config
	Replicate  ReplicateConfig
	ErrorPage  ErrorPageConfig
	CORS       CORSConfig
}

// ReplicateConfig конфигурация для подключения к Replicate API.
type ReplicateConfig struct {
	APIToken     string        `env:"REPLICATE_API_TOKEN"`
	LegacyToken  string        `env:"VITE_REPLICATE_API_TOKEN"` // Имя переменной из старого фронтенд-окружения
	BaseURL      string        `env:"REPLICATE_BASE_URL" env-default:"https://api.replicate.com/v1"`
	Model        string        `env:"REPLICATE_MODEL" env-default:"stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"`
	HTTPTimeout  time.Duration `env:"REPLICATE_HTTP_TIMEOUT" env-default:"90s"`
	PollInterval time.Duration `env:"REPLICATE_POLL_INTERVAL" env-default:"500ms"`
}

// ErrorPageConfig управляет тем, что видит пользователь на странице ошибки.
type ErrorPageConfig struct {
	// ShowStack выводит стектрейс пользователю. Включено по умолчанию, как и раньше.
	ShowStack bool `env:"ERROR_SHOW_STACK" env-default:"true"`
}

// CORSConfig - пустой список отключает CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// Load загружает конфигурацию из переменных окружения и .env файла.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	if err := cfg.resolveAPIToken(); err != nil {
		return nil, err
	}
	if cfg.Replicate.PollInterval <= 0 {
		return nil, fmt.Errorf("REPLICATE_POLL_INTERVAL must be positive, got %s", cfg.Replicate.PollInterval)
	}
	cfg.CORS.AllowedOrigins = cleanOrigins(cfg.CORS.AllowedOrigins)

	return &cfg, nil
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// resolveAPIToken: REPLICATE_API_TOKEN, затем VITE_REPLICATE_API_TOKEN, затем Docker secret.
func (c *Config) resolveAPIToken() error {
	token := strings.TrimSpace(c.Replicate.APIToken)
	if token == "" {
		token = strings.TrimSpace(c.Replicate.LegacyToken)
	}
	if token == "" {
		secret, err := ReadSecret(c.SecretsDir, "replicate_api_token")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMissingAPIToken, err)
		}
		token = secret
	}
	c.Replicate.APIToken = token
	c.Replicate.LegacyToken = ""
	return nil
}

func cleanOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}
