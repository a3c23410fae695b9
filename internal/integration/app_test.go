package integration_test

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/afisha/internal/app"
	"github.com/metinatakli/afisha/internal/mailer"
	"github.com/metinatakli/afisha/internal/queue"
	"github.com/metinatakli/afisha/internal/repository"
	appvalidator "github.com/metinatakli/afisha/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App       *app.Application
	Handler   http.Handler
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Mailer    *mailer.MockMailer
	Publisher *queue.MockPublisher
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := mailer.NewMockMailer()
	publisher := queue.NewMockPublisher()

	db, err := app.NewDatabasePool(cfg.DB)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	application, err := app.NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		mailer,
		publisher,
		app.NewCache(redisClient, cfg.CacheTTL),
		repository.NewPostgresFilmRepository(db),
		repository.NewPostgresScheduleRepository(db),
	)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	return &TestApp{
		App:       application,
		Handler:   application.Routes(),
		DB:        db,
		Redis:     redisClient,
		Mailer:    mailer,
		Publisher: publisher,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
