package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Schedule struct {
	ID      string
	FilmID  string
	Daytime time.Time
	Hall    int
	Rows    int
	Seats   int
	Price   decimal.Decimal
	Taken   []string
	Version int
}

type SeatRequest struct {
	Row   int
	Seat  int
	Price decimal.Decimal
}

// Key returns the canonical occupancy key of the requested seat.
func (r SeatRequest) Key() string {
	return SeatKey(r.Row, r.Seat)
}

func SeatKey(row, seat int) string {
	return fmt.Sprintf("%d:%d", row, seat)
}

// Reserve checks the requested seats against the schedule and, when all of
// them are free and distinct, marks them as taken. The schedule price becomes
// the price of the first request. On error the schedule is left untouched.
func (s *Schedule) Reserve(requests []SeatRequest) error {
	keys := make([]string, len(requests))
	distinct := make(map[string]struct{}, len(requests))

	for i, req := range requests {
		keys[i] = req.Key()
		distinct[keys[i]] = struct{}{}
	}

	if len(distinct) < len(requests) {
		return ErrDuplicateSeats
	}

	taken := make(map[string]struct{}, len(s.Taken))
	for _, key := range s.Taken {
		taken[key] = struct{}{}
	}

	var conflicts []string
	for _, key := range keys {
		if _, ok := taken[key]; ok {
			conflicts = append(conflicts, key)
		}
	}

	if len(conflicts) > 0 {
		return &SeatsTakenError{Seats: conflicts}
	}

	updated := make([]string, 0, len(s.Taken)+len(keys))
	updated = append(updated, s.Taken...)
	updated = append(updated, keys...)

	s.Taken = updated
	if len(requests) > 0 {
		s.Price = requests[0].Price
	}

	return nil
}

type ScheduleRepository interface {
	GetByFilmId(ctx context.Context, filmID string) ([]*Schedule, error)
	GetByFilmAndId(ctx context.Context, filmID, id string) (*Schedule, error)
	Update(ctx context.Context, schedule *Schedule) (*Schedule, error)
}
