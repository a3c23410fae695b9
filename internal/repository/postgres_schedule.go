package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/afisha/internal/domain"
)

type PostgresScheduleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScheduleRepository(db *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{
		db: db,
	}
}

const scheduleColumns = `id::text, film_id::text, daytime, hall, "rows", seats, price, taken, version`

func (p *PostgresScheduleRepository) GetByFilmId(ctx context.Context, filmID string) ([]*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE film_id = $1
		ORDER BY daytime ASC
	`

	rows, err := p.db.Query(ctx, query, filmID)
	if err != nil {
		if isInvalidIdentifier(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.Schedule{}

	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}

		schedules = append(schedules, schedule)
	}

	if err = rows.Err(); err != nil {
		if isInvalidIdentifier(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return schedules, nil
}

func (p *PostgresScheduleRepository) GetByFilmAndId(ctx context.Context, filmID, id string) (*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE id = $1 AND film_id = $2
	`

	schedule, err := scanSchedule(p.db.QueryRow(ctx, query, id, filmID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidIdentifier(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return schedule, nil
}

// Update writes the taken seats and price of the schedule. The write only
// applies when the stored version still matches schedule.Version, otherwise
// domain.ErrEditConflict is returned.
func (p *PostgresScheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	query := `
		UPDATE schedules
		SET taken = $1, price = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING ` + scheduleColumns

	taken := schedule.Taken
	if taken == nil {
		taken = []string{}
	}

	saved, err := scanSchedule(p.db.QueryRow(
		ctx,
		query,
		taken,
		decimalToNumeric(schedule.Price),
		schedule.ID,
		schedule.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEditConflict
		}

		return nil, err
	}

	return saved, nil
}

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var (
		schedule domain.Schedule
		price    pgtype.Numeric
	)

	err := row.Scan(
		&schedule.ID,
		&schedule.FilmID,
		&schedule.Daytime,
		&schedule.Hall,
		&schedule.Rows,
		&schedule.Seats,
		&price,
		&schedule.Taken,
		&schedule.Version,
	)
	if err != nil {
		return nil, err
	}

	schedule.Daytime = schedule.Daytime.UTC()
	schedule.Price = numericToDecimal(price)

	return &schedule, nil
}
