package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/gym-backend/config"
	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	pginfra "github.com/oksasatya/gym-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/gym-backend/pkg/helpers"
)

var demoEvents = []entity.Event{
	{Title: "Morning HIIT", Name: "hiit-am", Date: "2026-11-02", NumOfParticipants: 12, ModeOfPayment: "cash"},
	{Title: "Power Yoga", Name: "yoga-pm", Date: "2026-11-03", NumOfParticipants: 20, ModeOfPayment: "online"},
	{Title: "Strength Bootcamp", Name: "bootcamp", Date: "2026-11-05", NumOfParticipants: 8, ModeOfPayment: "online"},
	{Title: "Spin Class", Name: "spin", Date: "2026-11-06", NumOfParticipants: 1, ModeOfPayment: "cash"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	n, err := seedEvents(ctx, pginfra.NewEventRepository(pool), time.Now().UTC())
	if err != nil {
		logger.WithError(err).Fatal("failed to seed events")
	}
	logger.WithField("events", n).Info("seeded demo events")
}

func seedEvents(ctx context.Context, repo repository.EventRepository, now time.Time) (int, error) {
	for i := range demoEvents {
		e := demoEvents[i]
		e.CreatedAt = now
		if err := repo.Create(ctx, &e); err != nil {
			return i, err
		}
	}
	return len(demoEvents), nil
}
