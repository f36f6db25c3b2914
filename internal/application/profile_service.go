package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

// AvatarUploader stores an object and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ProfileService struct {
	Users    repository.UserRepository
	Uploader AvatarUploader
	Now      func() time.Time
}

func NewProfileService(users repository.UserRepository, uploader AvatarUploader) *ProfileService {
	return &ProfileService{Users: users, Uploader: uploader, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("id is required")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// UploadAvatar stores an image under avatars/<userID>/ and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if s.Uploader == nil {
		return "", ErrUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalid("avatar must be an image")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "avatars/" + u.ID + "/" + uuid.NewString() + ext
	url, err := s.Uploader.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.Users.UpdateAvatar(ctx, u.ID, url, s.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", storageErr("update avatar", err)
	}
	return url, nil
}
