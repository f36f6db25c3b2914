package application

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/pkg/credential"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

func TestReissueService_Run(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	hasher := credential.NewStore(bcrypt.MinCost)

	users := newMemUsers()
	a := users.put(&entity.User{Email: "a@gym.test", Name: "A", Password: LegacyPlaceholder})
	users.put(&entity.User{Email: "", Name: "NoMail", Password: LegacyPlaceholder})
	kept := users.put(&entity.User{Email: "c@gym.test", Name: "C", Password: "$2a$04$alreadyhashed"})

	notifier := &recordingNotifier{}
	svc := NewReissueService(users, hasher, NewMailer(notifier, tpl.Brand{}, logger), logger)

	rep, err := svc.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, ReissueReport{Scanned: 2, Updated: 1, Skipped: 1}, rep)

	stored := users.get(a.ID)
	assert.NotEqual(t, LegacyPlaceholder, stored.Password)
	require.Len(t, notifier.sent(), 1)
	msg := notifier.sent()[0]
	assert.Equal(t, "a@gym.test", msg.To)

	var plain string
	for _, line := range strings.Split(msg.Text, "\n") {
		if rest, ok := strings.CutPrefix(line, "Password: "); ok {
			plain = rest
		}
	}
	assert.True(t, hasher.Verify(plain, stored.Password))
	assert.Equal(t, "$2a$04$alreadyhashed", users.get(kept.ID).Password)

	again, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Scanned)
	assert.Zero(t, again.Updated)
}

func TestReissueService_StorageFailure(t *testing.T) {
	users := newMemUsers()
	users.err = errDB
	svc := NewReissueService(users, credential.NewStore(bcrypt.MinCost), nil, nil)

	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, ErrStorage)
}
