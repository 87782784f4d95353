package mocks

import (
	"context"

	"ai-playground/internal/replicate"
	"ai-playground/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockPredictionRunner is a mock type for the PredictionRunner type
type MockPredictionRunner struct {
	mock.Mock
}

// Run provides a mock function with given fields: ctx, model, input
func (_m *MockPredictionRunner) Run(ctx context.Context, model replicate.ModelRef, input any) ([]string, error) {
	ret := _m.Called(ctx, model, input)

	var r0 []string
	if rf, ok := ret.Get(0).(func(context.Context, replicate.ModelRef, any) []string); ok {
		r0 = rf(ctx, model, input)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, replicate.ModelRef, any) error); ok {
		r1 = rf(ctx, model, input)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockPredictionRunner creates a new instance of MockPredictionRunner. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPredictionRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPredictionRunner {
	m := &MockPredictionRunner{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.PredictionRunner = (*MockPredictionRunner)(nil)
