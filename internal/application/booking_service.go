package application

import (
	"context"
	"errors"
	"expvar"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// Booking counters exposed on /api/debug/vars.
var bookingStats = expvar.NewMap("booking")

// Attendee identifies who takes the seat.
type Attendee struct {
	Name  string
	Email string
}

type BookingService struct {
	Events        repository.EventRepository
	Registrations repository.RegistrationRepository
	Mailer        *Mailer
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewBookingService(events repository.EventRepository, regs repository.RegistrationRepository, m *Mailer, logger *logrus.Logger) *BookingService {
	return &BookingService{
		Events:        events,
		Registrations: regs,
		Mailer:        m,
		Logger:        logger,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

// Book takes one seat of the event and records the registration.
//
// The seat is taken by a single conditional decrement, so concurrent callers can never
// drive capacity below zero. If the ledger append fails after the seat was taken the
// caller gets ErrPartialFailure and the mismatch is logged for reconciliation.
func (s *BookingService) Book(ctx context.Context, eventID string, a Attendee) (*entity.Registration, error) {
	eventID = strings.TrimSpace(eventID)
	a.Name = strings.TrimSpace(a.Name)
	a.Email = normalizeEmail(a.Email)
	if eventID == "" || a.Name == "" || a.Email == "" {
		return nil, invalid("eventId, name and email are required")
	}

	ev, err := s.Events.GetByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get event", err)
	}
	if !ev.HasSlots() {
		bookingStats.Add("exhausted", 1)
		return nil, ErrSlotsExhausted
	}

	ok, err := s.Events.DecrementSlot(ctx, eventID)
	if err != nil {
		return nil, storageErr("decrement slot", err)
	}
	if !ok {
		bookingStats.Add("exhausted", 1)
		return nil, ErrSlotsExhausted
	}

	reg := &entity.Registration{
		EventID:      eventID,
		EventTitle:   ev.Title,
		UserName:     a.Name,
		UserEmail:    a.Email,
		RegisteredAt: s.Now(),
	}
	if err := s.Registrations.Append(ctx, reg); err != nil {
		bookingStats.Add("partial_failure", 1)
		logEntry(s.Logger).WithError(err).WithFields(logrus.Fields{
			"event_id":   eventID,
			"user_email": a.Email,
			"user_name":  a.Name,
		}).Error("slot decremented but registration append failed")
		return nil, ErrPartialFailure
	}

	bookingStats.Add("booked", 1)
	s.Mailer.Send(ctx, tpl.BookingConfirmed, a.Name, a.Email, tpl.WithEvent(ev.Title, ev.Date))
	return reg, nil
}
