package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"ai-playground/internal/models"
	"ai-playground/internal/replicate"
)

// ErrImageGenerationFailed - ошибка при генерации изображения во внешнем API.
var ErrImageGenerationFailed = errors.New("image generation failed")

// Фиксированные параметры генерации. Пользователь их не меняет.
const (
	ImageWidth        = 768
	ImageHeight       = 768
	RefineStage       = "expert_ensemble_refiner"
	ApplyWatermark    = false
	NumInferenceSteps = 25
	MaxPromptLength   = 350 // Ограничение только для поля ввода в браузере
)

// GenerationInput - input предсказания SDXL.
type GenerationInput struct {
	Prompt            string `json:"prompt"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	Refine            string `json:"refine"`
	ApplyWatermark    bool   `json:"apply_watermark"`
	NumInferenceSteps int    `json:"num_inference_steps"`
}

// NewGenerationInput собирает input с фиксированным набором параметров.
func NewGenerationInput(prompt string) GenerationInput {
	return GenerationInput{
		Prompt:            prompt,
		Width:             ImageWidth,
		Height:            ImageHeight,
		Refine:            RefineStage,
		ApplyWatermark:    ApplyWatermark,
		NumInferenceSteps: NumInferenceSteps,
	}
}

// PredictionRunner - то, что умеет выполнить одно предсказание и вернуть URL результатов.
type PredictionRunner interface {
	Run(ctx context.Context, model replicate.ModelRef, input any) ([]string, error)
}

// ImageService определяет интерфейс генерации изображения по промпту.
type ImageService interface {
	// Generate выполняет ровно один вызов внешнего API и возвращает результат или ошибку.
	Generate(ctx context.Context, prompt string) models.GenerationOutcome
}

type imageServiceImpl struct {
	logger *zap.Logger
	runner PredictionRunner
	model  replicate.ModelRef
}

// NewImageService создает сервис генерации для указанной ревизии модели.
func NewImageService(logger *zap.Logger, runner PredictionRunner, modelRef string) (ImageService, error) {
	if runner == nil {
		return nil, errors.New("prediction runner cannot be nil")
	}
	model, err := replicate.ParseModelRef(modelRef)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &imageServiceImpl{
		logger: logger.Named("ImageService"),
		runner: runner,
		model:  model,
	}, nil
}

func (s *imageServiceImpl) Generate(ctx context.Context, prompt string) models.GenerationOutcome {
	log := s.logger.With(
		zap.String("model", s.model.String()),
		zap.String("prompt_hash", uuid.NewSHA1(uuid.NameSpaceOID, []byte(prompt)).String()),
		zap.Int("prompt_length", len(prompt)),
	)
	log.Info("Generating image...")
	log.Debug("Full prompt", zap.String("prompt", prompt))

	startTime := time.Now()
	output, err := s.runner.Run(ctx, s.model, NewGenerationInput(prompt))
	generationDuration.Observe(time.Since(startTime).Seconds())

	if err != nil {
		log.Error("Replicate prediction failed", zap.Error(err))
		replicateAPIErrors.Inc()
		generationsTotal.WithLabelValues(statusError).Inc()
		return models.Failure(pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrImageGenerationFailed, err)))
	}

	if len(output) == 0 {
		log.Warn("Replicate prediction returned no images")
		generationsTotal.WithLabelValues(statusEmpty).Inc()
	} else {
		log.Info("Image generated", zap.Int("outputs", len(output)), zap.String("first_url", output[0]))
		generationsTotal.WithLabelValues(statusSuccess).Inc()
	}

	return models.Success(models.GenerationResult{Prompt: prompt, Output: output})
}
