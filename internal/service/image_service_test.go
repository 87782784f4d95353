package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-playground/internal/config"
	"ai-playground/internal/mocks"
	"ai-playground/internal/replicate"
	"ai-playground/internal/service"
)

const testPrompt = "a cat wearing a hat while sat on a mat"

func expectedModel(t *testing.T) replicate.ModelRef {
	t.Helper()
	ref, err := replicate.ParseModelRef(config.DefaultModel)
	require.NoError(t, err)
	return ref
}

func fixedInput(prompt string) interface{} {
	return mock.MatchedBy(func(input any) bool {
		in, ok := input.(service.GenerationInput)
		return ok &&
			in.Prompt == prompt &&
			in.Width == 768 &&
			in.Height == 768 &&
			in.Refine == "expert_ensemble_refiner" &&
			!in.ApplyWatermark &&
			in.NumInferenceSteps == 25
	})
}

func TestNewImageService_Validation(t *testing.T) {
	_, err := service.NewImageService(zap.NewNop(), nil, config.DefaultModel)
	assert.Error(t, err)

	_, err = service.NewImageService(zap.NewNop(), mocks.NewMockPredictionRunner(t), "stability-ai/sdxl")
	assert.ErrorIs(t, err, replicate.ErrInvalidModelRef)
}

func TestImageService_Generate_Success(t *testing.T) {
	runner := mocks.NewMockPredictionRunner(t)
	svc, err := service.NewImageService(zap.NewNop(), runner, config.DefaultModel)
	require.NoError(t, err)

	runner.On("Run", mock.Anything, expectedModel(t), fixedInput(testPrompt)).
		Return([]string{"http://x/img.png"}, nil).Once()

	outcome := svc.Generate(context.Background(), testPrompt)

	require.False(t, outcome.Failed())
	assert.Equal(t, testPrompt, outcome.Result.Prompt)
	assert.Equal(t, []string{"http://x/img.png"}, outcome.Result.Output)
}

func TestImageService_Generate_EmptyOutput(t *testing.T) {
	runner := mocks.NewMockPredictionRunner(t)
	svc, err := service.NewImageService(zap.NewNop(), runner, config.DefaultModel)
	require.NoError(t, err)

	runner.On("Run", mock.Anything, mock.Anything, fixedInput(testPrompt)).Return(nil, nil).Once()

	outcome := svc.Generate(context.Background(), testPrompt)

	require.False(t, outcome.Failed())
	_, ok := outcome.Result.First()
	assert.False(t, ok)
	assert.Equal(t, []string{}, outcome.Result.Output)
}

func TestImageService_Generate_Failure(t *testing.T) {
	runner := mocks.NewMockPredictionRunner(t)
	svc, err := service.NewImageService(zap.NewNop(), runner, config.DefaultModel)
	require.NoError(t, err)

	upstream := fmt.Errorf("%w: content policy", replicate.ErrPredictionFailed)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, upstream).Once()

	outcome := svc.Generate(context.Background(), testPrompt)

	require.True(t, outcome.Failed())
	assert.Nil(t, outcome.Result)
	assert.ErrorIs(t, outcome.Err, service.ErrImageGenerationFailed)
	assert.ErrorIs(t, outcome.Err, replicate.ErrPredictionFailed)
	assert.Equal(t, "image generation failed: prediction failed: content policy", outcome.Err.Error())

	var tracer interface{ StackTrace() pkgerrors.StackTrace }
	require.True(t, errors.As(outcome.Err, &tracer))
	assert.NotEmpty(t, tracer.StackTrace())
}

func TestImageService_Generate_LongPromptForwardedUnmodified(t *testing.T) {
	runner := mocks.NewMockPredictionRunner(t)
	svc, err := service.NewImageService(zap.NewNop(), runner, config.DefaultModel)
	require.NoError(t, err)

	prompt := strings.Repeat("x", 10000)
	runner.On("Run", mock.Anything, mock.Anything, fixedInput(prompt)).Return([]string{"http://x/long.png"}, nil).Once()

	outcome := svc.Generate(context.Background(), prompt)

	require.False(t, outcome.Failed())
	assert.Len(t, outcome.Result.Prompt, 10000)
}
