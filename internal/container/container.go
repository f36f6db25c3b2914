package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/config"
	"github.com/oksasatya/gym-backend/internal/application"
	"github.com/oksasatya/gym-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/gym-backend/pkg/credential"
	"github.com/oksasatya/gym-backend/pkg/helpers"
	"github.com/oksasatya/gym-backend/pkg/mailer"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// Deps are the process-wide handles built in main. Optional integrations are nil when unconfigured.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       postgres.DB
	Redis    *redis.Client
	Notifier mailer.Notifier
	Uploader application.AvatarUploader
	Index    application.EventIndex
	Checkout application.CheckoutCreator
}

// Container holds the wired services shared by the router modules and commands.
type Container struct {
	Deps

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Hasher  *credential.Store
	Mailer  *application.Mailer

	Auth     *application.AuthService
	Ledger   *application.ResetLedger
	Booking  *application.BookingService
	Events   *application.EventService
	Profile  *application.ProfileService
	Feedback *application.FeedbackService
	Payment  *application.PaymentService
	Reissue  *application.ReissueService
}

func New(d Deps) *Container {
	cfg := d.Config
	if d.Notifier == nil {
		d.Notifier = mailer.NewLogNotifier(d.Logger)
	}

	users := postgres.NewUserRepository(d.DB)
	events := postgres.NewEventRepository(d.DB)
	regs := postgres.NewRegistrationRepository(d.DB)

	c := &Container{
		Deps:    d,
		JWT:     helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.AppName),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Hasher:  credential.NewStore(cfg.BcryptCost),
		Mailer:  application.NewMailer(d.Notifier, tpl.BrandFromConfig(cfg), d.Logger),
	}
	c.Ledger = application.NewResetLedger(users, cfg.ResetTokenTTL)
	c.Auth = application.NewAuthService(users, c.Hasher, c.Ledger, c.JWT, c.Mailer, d.Logger)
	c.Booking = application.NewBookingService(events, regs, c.Mailer, d.Logger)
	c.Events = application.NewEventService(events, regs, d.Index, d.Logger)
	c.Profile = application.NewProfileService(users, d.Uploader)
	c.Feedback = application.NewFeedbackService(postgres.NewFeedbackRepository(d.DB), postgres.NewContactRepository(d.DB))
	c.Payment = application.NewPaymentService(d.Checkout, postgres.NewPaymentRepository(d.DB), d.Logger)
	c.Reissue = application.NewReissueService(users, c.Hasher, c.Mailer, d.Logger)
	return c
}

// Limiter returns the Redis handle for rate limiting, or nil so limits are skipped.
func (c *Container) Limiter() redis.Cmdable {
	if c.Redis == nil {
		return nil
	}
	return c.Redis
}
