package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

// EventIndex keeps a searchable copy of events.
type EventIndex interface {
	Index(ctx context.Context, e *entity.Event) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]*entity.Event, error)
}

// NewEvent is the create payload.
type NewEvent struct {
	Title             string
	Name              string
	Date              string
	NumOfParticipants int
	ModeOfPayment     string
}

type EventService struct {
	Events        repository.EventRepository
	Registrations repository.RegistrationRepository
	Index         EventIndex
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewEventService(events repository.EventRepository, regs repository.RegistrationRepository, index EventIndex, logger *logrus.Logger) *EventService {
	return &EventService{
		Events:        events,
		Registrations: regs,
		Index:         index,
		Logger:        logger,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) Create(ctx context.Context, in NewEvent) (*entity.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Name = strings.TrimSpace(in.Name)
	in.Date = strings.TrimSpace(in.Date)
	in.ModeOfPayment = strings.TrimSpace(in.ModeOfPayment)
	if in.Title == "" || in.Name == "" || in.Date == "" || in.ModeOfPayment == "" {
		return nil, invalid("name, title, date, numOfParticipants and modeOfPayment are required")
	}
	if in.NumOfParticipants < 0 {
		return nil, invalid("numOfParticipants must not be negative")
	}

	ev := &entity.Event{
		Title:             in.Title,
		Name:              in.Name,
		Date:              in.Date,
		NumOfParticipants: in.NumOfParticipants,
		ModeOfPayment:     in.ModeOfPayment,
		CreatedAt:         s.Now(),
	}
	if err := s.Events.Create(ctx, ev); err != nil {
		return nil, storageErr("create event", err)
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, ev); err != nil {
			logEntry(s.Logger).WithError(err).WithField("event_id", ev.ID).Warn("event index failed")
		}
	}
	return ev, nil
}

func (s *EventService) List(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		return nil, storageErr("list events", err)
	}
	return events, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("id is required")
	}
	err := s.Events.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("delete event", err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			logEntry(s.Logger).WithError(err).WithField("event_id", id).Warn("event unindex failed")
		}
	}
	return nil
}

// Search runs a full-text query over indexed events.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]*entity.Event, error) {
	if s.Index == nil {
		return nil, ErrUnavailable
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("q is required")
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	events, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, storageErr("search events", err)
	}
	return events, nil
}

// ListRegistrations returns the ledger rows recorded for an event.
func (s *EventService) ListRegistrations(ctx context.Context, eventID string) ([]*entity.Registration, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, invalid("id is required")
	}
	regs, err := s.Registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, storageErr("list registrations", err)
	}
	return regs, nil
}
