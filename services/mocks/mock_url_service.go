package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-web-services/types"
)

// MockURLService is a mock URLService interface
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) CreateShortURL(ctx context.Context, originalURL string) (types.URLRecord, error) {
	args := m.Called(ctx, originalURL)
	return args.Get(0).(types.URLRecord), args.Error(1)
}

func (m *MockURLService) Resolve(ctx context.Context, code string) (types.URLRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(types.URLRecord), args.Error(1)
}

func (m *MockURLService) Stats(ctx context.Context, code string) (types.URLRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(types.URLRecord), args.Error(1)
}
