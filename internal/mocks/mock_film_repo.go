package mocks

import (
	"context"

	"github.com/metinatakli/afisha/internal/domain"
)

type MockFilmRepo struct {
	GetAllFunc  func(ctx context.Context) ([]*domain.Film, error)
	GetByIdFunc func(ctx context.Context, id string) (*domain.Film, error)
}

func (m *MockFilmRepo) GetAll(ctx context.Context) ([]*domain.Film, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockFilmRepo) GetById(ctx context.Context, id string) (*domain.Film, error) {
	return m.GetByIdFunc(ctx, id)
}
