package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/pkg/response"
)

const maxAvatarBytes = 5 << 20

type ProfileUseCase interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error)
}

type ProfileHandler struct {
	Svc    ProfileUseCase
	Logger *logrus.Logger
}

func NewProfileHandler(svc ProfileUseCase, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

// GetProfile GET /api/profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.profile(c, c.Param("id"))
}

// Me GET /api/me (auth required)
func (h *ProfileHandler) Me(c *gin.Context) {
	h.profile(c, c.GetString("userID"))
}

func (h *ProfileHandler) profile(c *gin.Context, id string) {
	u, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile", nil)
}

// UploadAvatar POST /api/me/avatar (auth required, multipart field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", response.ErrorBody{Code: "invalid_request"})
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusBadRequest, "avatar exceeds 5MB", response.ErrorBody{Code: "invalid_request"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatarUrl": url}, "avatar updated", nil)
}
