package mocks

import (
	"context"

	"github.com/metinatakli/afisha/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) GetByFilmId(ctx context.Context, filmID string) ([]*domain.Schedule, error) {
	args := m.Called(ctx, filmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepo) GetByFilmAndId(ctx context.Context, filmID, id string) (*domain.Schedule, error) {
	args := m.Called(ctx, filmID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepo) Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	args := m.Called(ctx, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *domain.Schedule) *domain.Schedule); ok {
		return fn(ctx, schedule), args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
