package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appmiddleware "github.com/metinatakli/afisha/internal/middleware"
	"github.com/riandyrn/otelchi"
)

const (
	apiPrefix     = "/api/afisha"
	contentPrefix = "/content/afisha"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(appmiddleware.RecoverPanic(app.logger))
	r.Use(appmiddleware.EnableCORS)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/healthcheck", app.GetHealth)

		r.Get("/films", app.GetFilms)
		r.Get("/films/{id}/schedule", func(w http.ResponseWriter, r *http.Request) {
			app.GetFilmSchedule(w, r, chi.URLParam(r, "id"))
		})

		r.Post("/order", app.CreateOrder)
	})

	if app.config.StaticDir != "" {
		fs := http.StripPrefix(contentPrefix, http.FileServer(http.Dir(app.config.StaticDir)))

		r.Get(contentPrefix+"/*", func(w http.ResponseWriter, r *http.Request) {
			// directory listings stay hidden
			if strings.HasSuffix(r.URL.Path, "/") {
				app.notFoundResponse(w, r)
				return
			}
			fs.ServeHTTP(w, r)
		})
	}

	return r
}
