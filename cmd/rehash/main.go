package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/config"
	"github.com/oksasatya/gym-backend/internal/application"
	pginfra "github.com/oksasatya/gym-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/gym-backend/pkg/credential"
	"github.com/oksasatya/gym-backend/pkg/helpers"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// rehash issues fresh generated passwords to accounts still holding the legacy placeholder
// and mails each member their new password.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-rehash", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	notifier, closeNotifier := helpers.NotifierFromConfig(cfg, logger)
	defer closeNotifier()

	svc := application.NewReissueService(
		pginfra.NewUserRepository(pool),
		credential.NewStore(cfg.BcryptCost),
		application.NewMailer(notifier, tpl.BrandFromConfig(cfg), logger),
		logger,
	)
	report, err := svc.Run(ctx)
	entry := logger.WithFields(logrus.Fields{
		"scanned": report.Scanned,
		"updated": report.Updated,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	})
	if err != nil {
		entry.WithError(err).Fatal("reissue aborted")
	}
	entry.Info("reissue finished")
}
