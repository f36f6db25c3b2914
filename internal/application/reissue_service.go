package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/repository"
	"github.com/oksasatya/gym-backend/pkg/credential"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// LegacyPlaceholder is the plaintext password imported accounts were created with.
const LegacyPlaceholder = "RESETME"

type ReissueReport struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReissueService gives every account still holding LegacyPlaceholder a generated
// password, stores its hash and mails the plaintext to the member.
type ReissueService struct {
	Users  repository.UserRepository
	Hasher credential.Hasher
	Mailer *Mailer
	Logger *logrus.Logger

	Now              func() time.Time
	GeneratePassword func() (string, error)
}

func NewReissueService(users repository.UserRepository, hasher credential.Hasher, m *Mailer, logger *logrus.Logger) *ReissueService {
	return &ReissueService{
		Users:            users,
		Hasher:           hasher,
		Mailer:           m,
		Logger:           logger,
		Now:              func() time.Time { return time.Now().UTC() },
		GeneratePassword: func() (string, error) { return credential.GeneratePassword(credential.PasswordLength) },
	}
}

// Run processes every placeholder account. Each swap is conditional on the stored value
// still being the placeholder, so concurrent runs never issue two passwords.
func (s *ReissueService) Run(ctx context.Context) (ReissueReport, error) {
	var rep ReissueReport
	users, err := s.Users.ListByPassword(ctx, LegacyPlaceholder)
	if err != nil {
		return rep, storageErr("list placeholder accounts", err)
	}
	rep.Scanned = len(users)

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		log := logEntry(s.Logger).WithField("user_id", u.ID)
		if strings.TrimSpace(u.Email) == "" {
			log.Info("skipping account without email")
			rep.Skipped++
			continue
		}

		plain, err := s.GeneratePassword()
		if err == nil && !credential.IsStrong(plain) {
			err = ErrWeakGeneratedSecret
		}
		var hash string
		if err == nil {
			hash, err = s.Hasher.Hash(plain)
		}
		if err != nil {
			log.WithError(err).Error("generate replacement password failed")
			rep.Failed++
			continue
		}

		ok, err := s.Users.UpdatePassword(ctx, u.ID, LegacyPlaceholder, hash, s.Now())
		if err != nil {
			log.WithError(err).Error("store replacement password failed")
			rep.Failed++
			continue
		}
		if !ok {
			log.Info("account changed since scan, skipping")
			rep.Skipped++
			continue
		}

		rep.Updated++
		s.Mailer.Send(ctx, tpl.PasswordReissued, u.Name, u.Email, tpl.WithPassword(plain))
	}
	return rep, nil
}
