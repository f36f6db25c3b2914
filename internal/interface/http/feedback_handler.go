package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/pkg/response"
)

type FeedbackUseCase interface {
	AddFeedback(ctx context.Context, rating int, comment string) (*entity.Feedback, error)
	ListFeedback(ctx context.Context) ([]*entity.Feedback, error)
	SubmitContact(ctx context.Context, name, email, message string) (*entity.ContactMessage, error)
	ListContacts(ctx context.Context) ([]*entity.ContactMessage, error)
}

type FeedbackHandler struct {
	Svc    FeedbackUseCase
	Logger *logrus.Logger
}

func NewFeedbackHandler(svc FeedbackUseCase, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{Svc: svc, Logger: logger}
}

type feedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,rating"`
	Comment string `json:"comment" binding:"required"`
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// AddFeedback POST /api/feedback
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	f, err := h.Svc.AddFeedback(c.Request.Context(), req.Rating, req.Comment)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, feedbackView{ID: f.ID, Rating: f.Rating, Comment: f.Comment, SubmittedAt: f.SubmittedAt}, "feedback submitted", nil)
}

// ListFeedback GET /api/feedback
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	items, err := h.Svc.ListFeedback(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]feedbackView, 0, len(items))
	for _, f := range items {
		out = append(out, feedbackView{ID: f.ID, Rating: f.Rating, Comment: f.Comment, SubmittedAt: f.SubmittedAt})
	}
	response.Success(c, http.StatusOK, out, "feedback", map[string]any{"count": len(out)})
}

// SubmitContact POST /api/contact
func (h *FeedbackHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	m, err := h.Svc.SubmitContact(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toContactView(m), "message received", nil)
}

// ListContacts GET /api/contact
func (h *FeedbackHandler) ListContacts(c *gin.Context) {
	items, err := h.Svc.ListContacts(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]contactView, 0, len(items))
	for _, m := range items {
		out = append(out, toContactView(m))
	}
	response.Success(c, http.StatusOK, out, "contact messages", map[string]any{"count": len(out)})
}

func toContactView(m *entity.ContactMessage) contactView {
	return contactView{ID: m.ID, Name: m.Name, Email: m.Email, Message: m.Message, SubmittedAt: m.SubmittedAt}
}
