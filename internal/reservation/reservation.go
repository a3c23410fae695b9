// Package reservation commits seat reservations against a schedule.
//
// A reservation is a read-modify-write of a single schedule record. Writes go
// through ScheduleRepository.Update, which is expected to reject the record
// when its version changed since it was read, so two concurrent reservations
// of the same schedule cannot both succeed against the same taken set.
package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/afisha/internal/domain"
)

type Service struct {
	schedules domain.ScheduleRepository
}

func NewService(schedules domain.ScheduleRepository) *Service {
	return &Service{
		schedules: schedules,
	}
}

// ReserveSeats marks the requested seats of the session as taken and returns
// the stored schedule. It fails with domain.ErrSessionNotFound,
// domain.ErrDuplicateSeats, a *domain.SeatsTakenError or
// domain.ErrReservationNotPersist; only the last one is returned after a write
// was attempted.
func (s *Service) ReserveSeats(
	ctx context.Context,
	filmID, sessionID string,
	requests []domain.SeatRequest) (*domain.Schedule, error) {

	schedule, err := s.schedules.GetByFilmAndId(ctx, filmID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to fetch schedule %s: %w", sessionID, err)
	}

	err = schedule.Reserve(requests)
	if err != nil {
		return nil, err
	}

	saved, err := s.schedules.Update(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReservationNotPersist, err)
	}

	return saved, nil
}
