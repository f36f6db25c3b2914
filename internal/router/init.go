package router

import (
	"github.com/oksasatya/gym-backend/internal/container"
	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	limiter := c.Limiter()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Logger, c.Cookies), c.JWT, limiter))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(c.Profile, c.Logger), c.JWT, limiter))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(c.Events, c.Booking, c.Logger), limiter))
	r.Add(modules.NewFeedbackModule(handlers.NewFeedbackHandler(c.Feedback, c.Logger), limiter))
	r.Add(modules.NewPaymentModule(handlers.NewPaymentHandler(c.Payment, c.Logger), limiter))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}
