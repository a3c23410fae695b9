package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrEditConflict          = errors.New("edit conflict")
	ErrSessionNotFound       = errors.New("session not found")
	ErrDuplicateSeats        = errors.New("duplicate seats in request")
	ErrSeatsAlreadyTaken     = errors.New("seats are already taken")
	ErrReservationNotPersist = errors.New("reservation could not be persisted")
)

// SeatsTakenError lists the requested seat keys that were already reserved,
// in the order they appeared in the request.
type SeatsTakenError struct {
	Seats []string
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSeatsAlreadyTaken, strings.Join(e.Seats, ", "))
}

func (e *SeatsTakenError) Is(target error) bool {
	return target == ErrSeatsAlreadyTaken
}
