package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/application"
	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/pkg/response"
)

type EventUseCase interface {
	Create(ctx context.Context, in application.NewEvent) (*entity.Event, error)
	List(ctx context.Context) ([]*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]*entity.Event, error)
	ListRegistrations(ctx context.Context, eventID string) ([]*entity.Registration, error)
}

type BookingUseCase interface {
	Book(ctx context.Context, eventID string, a application.Attendee) (*entity.Registration, error)
}

type EventHandler struct {
	Events  EventUseCase
	Booking BookingUseCase
	Logger  *logrus.Logger
}

func NewEventHandler(events EventUseCase, booking BookingUseCase, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Events: events, Booking: booking, Logger: logger}
}

type searchQuery struct {
	Q    string `form:"q" json:"q"`
	Size int    `form:"size" json:"size" binding:"omitempty,min=1,max=50"`
}

type createEventRequest struct {
	Title             string `json:"title" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Date              string `json:"date" binding:"required"`
	NumOfParticipants *int   `json:"numOfParticipants" binding:"required,capacity"`
	ModeOfPayment     string `json:"modeOfPayment" binding:"required"`
}

type bookRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ev, err := h.Events.Create(c.Request.Context(), application.NewEvent{
		Title:             req.Title,
		Name:              req.Name,
		Date:              req.Date,
		NumOfParticipants: *req.NumOfParticipants,
		ModeOfPayment:     req.ModeOfPayment,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toEventView(ev), "event created", nil)
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventViews(events), "events", map[string]any{"count": len(events)})
}

// Search GET /api/events/search?q=&size=
func (h *EventHandler) Search(c *gin.Context) {
	var req searchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	events, err := h.Events.Search(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventViews(events), "events", map[string]any{"count": len(events)})
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "event deleted", nil)
}

// Registrations GET /api/events/:id/registrations
func (h *EventHandler) Registrations(c *gin.Context) {
	regs, err := h.Events.ListRegistrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]registrationView, 0, len(regs))
	for _, r := range regs {
		out = append(out, toRegistrationView(r))
	}
	response.Success(c, http.StatusOK, out, "registrations", map[string]any{"count": len(out)})
}

// Book POST /api/events/:id/book
func (h *EventHandler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	reg, err := h.Booking.Book(c.Request.Context(), c.Param("id"), application.Attendee{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRegistrationView(reg), "slot booked", nil)
}
