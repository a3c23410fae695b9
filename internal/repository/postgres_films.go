package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/afisha/internal/domain"
)

type PostgresFilmRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFilmRepository(db *pgxpool.Pool) *PostgresFilmRepository {
	return &PostgresFilmRepository{
		db: db,
	}
}

func (p *PostgresFilmRepository) GetAll(ctx context.Context) ([]*domain.Film, error) {
	query := `
		SELECT id::text, rating::float8, director, tags, title, about, description, image, cover
		FROM films
		ORDER BY title, id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	films := []*domain.Film{}

	for rows.Next() {
		var film domain.Film

		err := rows.Scan(
			&film.ID,
			&film.Rating,
			&film.Director,
			&film.Tags,
			&film.Title,
			&film.About,
			&film.Description,
			&film.Image,
			&film.Cover,
		)
		if err != nil {
			return nil, err
		}

		films = append(films, &film)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return films, nil
}

func (p *PostgresFilmRepository) GetById(ctx context.Context, id string) (*domain.Film, error) {
	query := `
		SELECT id::text, rating::float8, director, tags, title, about, description, image, cover
		FROM films
		WHERE id = $1
	`

	var film domain.Film

	err := p.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Rating,
		&film.Director,
		&film.Tags,
		&film.Title,
		&film.About,
		&film.Description,
		&film.Image,
		&film.Cover,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidIdentifier(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &film, nil
}
