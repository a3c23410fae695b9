package app

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/afisha/api"
	"github.com/metinatakli/afisha/internal/domain"
)

func (app *Application) GetFilms(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var resp api.FilmListResponse

	hit, err := app.cache.Get(r.Context(), filmsCacheKey, &resp)
	if err != nil {
		logger.Warn("failed to read films from cache", "error", err)
	}

	if !hit {
		films, err := app.filmRepo.GetAll(r.Context())
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		resp = api.FilmListResponse{
			Total: len(films),
			Items: toApiFilms(films),
		}

		err = app.cache.Set(r.Context(), filmsCacheKey, resp)
		if err != nil {
			logger.Warn("failed to cache films", "error", err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetFilmSchedule(w http.ResponseWriter, r *http.Request, filmID string) {
	logger := app.contextGetLogger(r)

	if _, err := uuid.Parse(filmID); err != nil {
		app.errorResponse(w, r, http.StatusNotFound, ErrFilmNotFound)
		return
	}

	key := scheduleCacheKey(filmID)

	var resp api.ScheduleListResponse

	hit, err := app.cache.Get(r.Context(), key, &resp)
	if err != nil {
		logger.Warn("failed to read schedule from cache", "error", err, "film_id", filmID)
	}

	if !hit {
		_, err := app.filmRepo.GetById(r.Context(), filmID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.errorResponse(w, r, http.StatusNotFound, ErrFilmNotFound)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		schedules, err := app.scheduleRepo.GetByFilmId(r.Context(), filmID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		resp = api.ScheduleListResponse{
			Total: len(schedules),
			Items: toApiSchedules(schedules),
		}

		err = app.cache.Set(r.Context(), key, resp)
		if err != nil {
			logger.Warn("failed to cache schedule", "error", err, "film_id", filmID)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiFilms(films []*domain.Film) []api.Film {
	items := make([]api.Film, len(films))

	for i, f := range films {
		tags := f.Tags
		if tags == nil {
			tags = []string{}
		}

		items[i] = api.Film{
			Id:          f.ID,
			Rating:      f.Rating,
			Director:    f.Director,
			Tags:        tags,
			Title:       f.Title,
			About:       f.About,
			Description: f.Description,
			Image:       f.Image,
			Cover:       f.Cover,
		}
	}

	return items
}

func toApiSchedules(schedules []*domain.Schedule) []api.Schedule {
	items := make([]api.Schedule, len(schedules))

	for i, s := range schedules {
		items[i] = toApiSchedule(s)
	}

	return items
}

func toApiSchedule(s *domain.Schedule) api.Schedule {
	taken := s.Taken
	if taken == nil {
		taken = []string{}
	}

	return api.Schedule{
		Id:      s.ID,
		Daytime: s.Daytime,
		Hall:    s.Hall,
		Rows:    s.Rows,
		Seats:   s.Seats,
		Price:   s.Price,
		Taken:   taken,
	}
}
