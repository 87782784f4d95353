package mocks

import (
	"context"

	"ai-playground/internal/models"
	"ai-playground/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockImageService is a mock type for the ImageService type
type MockImageService struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt
func (_m *MockImageService) Generate(ctx context.Context, prompt string) models.GenerationOutcome {
	ret := _m.Called(ctx, prompt)

	var r0 models.GenerationOutcome
	if rf, ok := ret.Get(0).(func(context.Context, string) models.GenerationOutcome); ok {
		r0 = rf(ctx, prompt)
	} else {
		r0 = ret.Get(0).(models.GenerationOutcome)
	}

	return r0
}

// NewMockImageService creates a new instance of MockImageService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockImageService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageService {
	m := &MockImageService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.ImageService = (*MockImageService)(nil)
