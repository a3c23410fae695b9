package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/afisha/api"
	"github.com/metinatakli/afisha/internal/domain"
	"github.com/metinatakli/afisha/internal/queue"
)

const publishTimeout = 3 * time.Second

func (app *Application) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filmID := input.Tickets[0].Film
	sessionID := input.Tickets[0].Session
	logger = logger.With("film_id", filmID, "session_id", sessionID)

	schedule, err := app.reservations.ReserveSeats(r.Context(), filmID, sessionID, toSeatRequests(input.Tickets))
	if err != nil {
		var takenErr *domain.SeatsTakenError

		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			app.recordReservation(r.Context(), "session_not_found")
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrDuplicateSeats):
			app.recordReservation(r.Context(), "duplicate_seats")
			app.badRequestResponse(w, r, err)
		case errors.As(err, &takenErr):
			app.recordReservation(r.Context(), "seats_taken")
			logger.Info("seats already taken", "seats", takenErr.Seats)
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrEditConflict):
			app.recordReservation(r.Context(), "edit_conflict")
			logger.Warn("schedule changed during reservation")
			app.editConflictResponseWithErr(w, r, domain.ErrReservationNotPersist)
		default:
			app.recordReservation(r.Context(), "error")
			logger.Error("failed to reserve seats", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.recordReservation(r.Context(), "reserved")

	order := domain.NewOrder(filmID, sessionID, string(input.Email), input.Phone, toDomainTickets(input.Tickets))

	logger.Info("seats reserved", "order_id", order.ID, "seats", order.SeatKeys())

	err = app.cache.Delete(r.Context(), scheduleCacheKey(filmID))
	if err != nil {
		logger.Warn("failed to invalidate schedule cache", "error", err)
	}

	app.publishOrderCreated(r.Context(), order)
	app.sendOrderConfirmation(r.WithContext(context.WithoutCancel(r.Context())), order, schedule)

	resp := api.OrderResponse{
		Total: len(input.Tickets),
		Items: toOrderItems(input.Tickets, order),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) publishOrderCreated(ctx context.Context, order domain.Order) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := queue.OrderCreatedEvent{
		OrderID:   order.ID,
		FilmID:    order.FilmID,
		SessionID: order.SessionID,
		Email:     order.Email,
		Seats:     order.SeatKeys(),
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
	}

	err := app.publisher.PublishOrderCreated(ctx, event)
	if err != nil {
		app.logger.Error("failed to publish order event", "order_id", order.ID, "error", err)
	}
}

func (app *Application) sendOrderConfirmation(r *http.Request, order domain.Order, schedule *domain.Schedule) {
	logger := app.contextGetLogger(r).With("order_id", order.ID)

	app.background(logger, func() {
		data := map[string]any{
			"orderID": order.ID,
			"daytime": schedule.Daytime.Format("2006-01-02 15:04"),
			"total":   order.Total().String(),
			"tickets": order.Tickets,
		}

		err := app.mailer.Send(order.Email, "order_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send order confirmation", "error", err)
			return
		}

		logger.Info("order confirmation sent")
	})
}

func toSeatRequests(tickets []api.Ticket) []domain.SeatRequest {
	requests := make([]domain.SeatRequest, len(tickets))

	for i, t := range tickets {
		requests[i] = domain.SeatRequest{
			Row:   t.Row,
			Seat:  t.Seat,
			Price: t.Price,
		}
	}

	return requests
}

func toDomainTickets(tickets []api.Ticket) []domain.Ticket {
	result := make([]domain.Ticket, len(tickets))

	for i, t := range tickets {
		result[i] = domain.Ticket{
			Daytime: t.Daytime,
			Row:     t.Row,
			Seat:    t.Seat,
			Price:   t.Price,
		}
	}

	return result
}

func toOrderItems(tickets []api.Ticket, order domain.Order) []api.OrderItem {
	items := make([]api.OrderItem, len(tickets))

	for i, t := range tickets {
		items[i] = api.OrderItem{
			Ticket: t,
			Id:     order.Tickets[i].ID,
		}
	}

	return items
}
