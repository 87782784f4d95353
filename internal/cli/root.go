package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ai-playground/internal/config"
	"ai-playground/internal/logger"
	"ai-playground/internal/replicate"
	"ai-playground/internal/service"
)

// NewRootCmd собирает корневую команду. Без подкоманды запускается веб-сервер.
func NewRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	cmd := &cobra.Command{
		Use:   "ai-playground",
		Short: "Image generation playground backed by Replicate SDXL",
		Long: `ai-playground serves a single page with a prompt form.

Submitting the form runs one Stable Diffusion XL prediction on Replicate
and shows the first generated image.`,
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	cmd.Flags().AddFlagSet(serveCmd.Flags())

	cmd.AddCommand(serveCmd)
	cmd.AddCommand(newGenerateCmd())

	return cmd
}

// app - общие зависимости для команд.
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	imageService service.ImageService
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	client, err := replicate.NewClient(replicate.ClientConfig{
		BaseURL:      cfg.Replicate.BaseURL,
		APIToken:     cfg.Replicate.APIToken,
		HTTPTimeout:  cfg.Replicate.HTTPTimeout,
		PollInterval: cfg.Replicate.PollInterval,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create replicate client: %w", err)
	}

	imageService, err := service.NewImageService(log, client, cfg.Replicate.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create image service: %w", err)
	}

	return &app{cfg: cfg, logger: log, imageService: imageService}, nil
}

// loadConfig читает конфигурацию и создает логгер.
func loadConfig(opts ...logger.Option) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logger, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
