package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-web-services/types"
)

// MockURLStorage is a mock URLStorage interface
type MockURLStorage struct {
	mock.Mock
}

func (m *MockURLStorage) Put(ctx context.Context, record types.URLRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockURLStorage) Get(ctx context.Context, code string) (types.URLRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(types.URLRecord), args.Error(1)
}

func (m *MockURLStorage) RecordClick(ctx context.Context, code string) (types.URLRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(types.URLRecord), args.Error(1)
}

// MockUserRepository is a mock UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, name, email, passwordHash string) (types.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (types.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SearchByNamePrefix(ctx context.Context, prefix string) ([]types.User, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]types.User), args.Error(1)
}
