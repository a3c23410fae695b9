package domain

import "context"

type Film struct {
	ID          string
	Rating      float64
	Director    string
	Tags        []string
	Title       string
	About       string
	Description string
	Image       string
	Cover       string
}

type FilmRepository interface {
	GetAll(ctx context.Context) ([]*Film, error)
	GetById(ctx context.Context, id string) (*Film, error)
}
