package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string
	FilmID    string
	SessionID string
	Email     string
	Phone     string
	Tickets   []Ticket
	CreatedAt time.Time
}

type Ticket struct {
	ID      string
	Daytime time.Time
	Row     int
	Seat    int
	Price   decimal.Decimal
}

func NewOrder(filmID, sessionID, email, phone string, tickets []Ticket) Order {
	for i := range tickets {
		tickets[i].ID = uuid.New().String()
	}

	return Order{
		ID:        uuid.New().String(),
		FilmID:    filmID,
		SessionID: sessionID,
		Email:     email,
		Phone:     phone,
		Tickets:   tickets,
		CreatedAt: time.Now(),
	}
}

func (o Order) SeatKeys() []string {
	keys := make([]string, len(o.Tickets))
	for i, t := range o.Tickets {
		keys[i] = SeatKey(t.Row, t.Seat)
	}

	return keys
}

// Total sums the ticket prices.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range o.Tickets {
		total = total.Add(t.Price)
	}

	return total
}
