package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gym-backend/pkg/mailer"
)

type captureNotifier struct {
	got []mailer.Message
	err error
}

func (c *captureNotifier) Notify(_ context.Context, m mailer.Message) error {
	c.got = append(c.got, m)
	return c.err
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()

	t.Run("rendered job", func(t *testing.T) {
		n := &captureNotifier{}
		require.NoError(t, deliver(ctx, n, []byte(`{"to":"sam@gym.test","subject":"Hi","text":"hello"}`)))
		require.Len(t, n.got, 1)
		assert.Equal(t, "sam@gym.test", n.got[0].To)
	})

	t.Run("template job", func(t *testing.T) {
		n := &captureNotifier{}
		require.NoError(t, deliver(ctx, n, []byte(`{"to":"sam@gym.test","template":"booking_confirmed","data":{"Name":"Sam","Email":"sam@gym.test","EventTitle":"HIIT"}}`)))
		require.Len(t, n.got, 1)
		assert.NotEmpty(t, n.got[0].HTML)
	})

	t.Run("bad payloads are permanent", func(t *testing.T) {
		n := &captureNotifier{}
		assert.ErrorIs(t, deliver(ctx, n, []byte(`{`)), errPermanent)
		assert.ErrorIs(t, deliver(ctx, n, []byte(`{"subject":"no recipient"}`)), errPermanent)
		assert.ErrorIs(t, deliver(ctx, n, []byte(`{"to":"sam@gym.test","template":"nope"}`)), errPermanent)
		assert.Empty(t, n.got)
	})

	t.Run("send failure is retryable", func(t *testing.T) {
		n := &captureNotifier{err: errors.New("mailgun 503")}
		err := deliver(ctx, n, []byte(`{"to":"sam@gym.test","text":"hello"}`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, errPermanent)
	})
}
