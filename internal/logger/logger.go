package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит настройки для логгера.
type Config struct {
	// Уровень логирования (debug, info, warn, error)
	Level string `env:"LOG_LEVEL" env-default:"info"`
	// Формат вывода (json или console)
	Encoding string `env:"LOG_ENCODING" env-default:"json"`
	// Путь к файлу лога (если пусто, используется stdout)
	OutputPath string `env:"LOG_OUTPUT_PATH"`
}

// Option меняет значения по умолчанию, которые не задаются через окружение.
type Option func(*options)

type options struct {
	defaultOutput string
}

// WithDefaultOutput задает вывод на случай пустого OutputPath (по умолчанию stdout).
// CLI-команды, которые пишут результат в stdout, переводят логи в stderr.
func WithDefaultOutput(path string) Option {
	return func(o *options) {
		o.defaultOutput = path
	}
}

// New создает новый экземпляр zap.Logger на основе конфигурации.
func New(cfg Config, opts ...Option) (*zap.Logger, error) {
	o := options{defaultOutput: "stdout"}
	for _, opt := range opts {
		opt(&o)
	}

	// Устанавливаем уровень логирования
	level := zap.NewAtomicLevel()
	logLevel := strings.ToLower(cfg.Level)
	if logLevel == "" {
		logLevel = "info" // Уровень по умолчанию
	}
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		// Логируем ошибку в stderr, так как логгер еще не создан
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'. Error: %v\n", cfg.Level, err)
		level.SetLevel(zap.InfoLevel)
	}

	// Настройка кодировщика
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder // Уровни будут выглядеть как INFO, WARN

	encoding := strings.ToLower(cfg.Encoding)
	if encoding != "console" && encoding != "json" {
		encoding = "json" // По умолчанию json
	}

	// Настройка вывода: явный путь из окружения важнее значения по умолчанию
	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = o.defaultOutput
	}

	// Создание конфигурации Zap
	zapConfig := zap.Config{
		Level:             level,
		Development:       false,
		DisableCaller:     true, // Отключаем информацию о вызывающем для производительности
		DisableStacktrace: true, // Стектрейсы пишем сами там, где они нужны
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath}, // Куда писать основные логи
		ErrorOutputPaths:  []string{"stderr"},   // Куда писать ошибки самого логгера
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
