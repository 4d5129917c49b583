package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-web-services/services"
	"go-web-services/types"
)

// MockUserService is a mock UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, name, email, password string) (types.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int64) (types.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, update services.UserUpdate) (types.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) Search(ctx context.Context, namePrefix string) ([]types.User, error) {
	args := m.Called(ctx, namePrefix)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(types.User), args.Error(1)
}
