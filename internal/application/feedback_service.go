package application

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

type FeedbackService struct {
	Feedback repository.FeedbackRepository
	Contacts repository.ContactRepository
	Now      func() time.Time
}

func NewFeedbackService(feedback repository.FeedbackRepository, contacts repository.ContactRepository) *FeedbackService {
	return &FeedbackService{Feedback: feedback, Contacts: contacts, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *FeedbackService) AddFeedback(ctx context.Context, rating int, comment string) (*entity.Feedback, error) {
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 || comment == "" {
		return nil, invalid("rating (1-5) and comment are required")
	}
	f := &entity.Feedback{Rating: rating, Comment: comment, SubmittedAt: s.Now()}
	if err := s.Feedback.Create(ctx, f); err != nil {
		return nil, storageErr("create feedback", err)
	}
	return f, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context) ([]*entity.Feedback, error) {
	out, err := s.Feedback.List(ctx)
	if err != nil {
		return nil, storageErr("list feedback", err)
	}
	return out, nil
}

func (s *FeedbackService) SubmitContact(ctx context.Context, name, email, message string) (*entity.ContactMessage, error) {
	m := &entity.ContactMessage{
		Name:        strings.TrimSpace(name),
		Email:       normalizeEmail(email),
		Message:     strings.TrimSpace(message),
		SubmittedAt: s.Now(),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, invalid("name, email and message are required")
	}
	if err := s.Contacts.Create(ctx, m); err != nil {
		return nil, storageErr("create contact message", err)
	}
	return m, nil
}

func (s *FeedbackService) ListContacts(ctx context.Context) ([]*entity.ContactMessage, error) {
	out, err := s.Contacts.List(ctx)
	if err != nil {
		return nil, storageErr("list contact messages", err)
	}
	return out, nil
}
