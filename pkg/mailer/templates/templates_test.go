package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTemplates(t *testing.T) {
	data := NewEmailData(Brand{AppName: "IronWorks"}, "Sam", "sam@gym.test",
		WithPassword("Xy7@abcdEf"), WithToken("tok123"), WithEvent("HIIT", "2026-11-01"), WithExpiresIn(2*time.Minute))

	for _, name := range []string{Welcome, PasswordReset, BookingConfirmed, PasswordReissued} {
		t.Run(name, func(t *testing.T) {
			subject, text, html, err := Render(name, data)
			require.NoError(t, err)
			assert.NotEmpty(t, subject)
			assert.NotContains(t, subject, "\n")
			assert.NotEmpty(t, text)
			assert.NotEmpty(t, html)
		})
	}
}

func TestRender_Welcome(t *testing.T) {
	data := NewEmailData(Brand{}, "Sam", "sam@gym.test", WithPassword("Xy7@abcdEf"))

	subject, text, _, err := Render(Welcome, data)

	require.NoError(t, err)
	assert.Equal(t, "Gym: your account is ready", subject)
	assert.Contains(t, text, "Password: Xy7@abcdEf")
	assert.Contains(t, text, "sam@gym.test")
}

func TestRender_PasswordReset(t *testing.T) {
	b := Brand{AppName: "IronWorks", ResetURL: "https://gym.test/reset"}
	data := NewEmailData(b, "", "sam+1@gym.test", WithToken("tok123"), WithExpiresIn(120*time.Second))

	subject, text, html, err := Render(PasswordReset, data)

	require.NoError(t, err)
	assert.Equal(t, "IronWorks: password reset", subject)
	assert.Contains(t, text, "Hello there")
	assert.Contains(t, text, "tok123")
	assert.Contains(t, text, "expires in 2 minutes")
	assert.Contains(t, text, "https://gym.test/reset?email=sam%2B1%40gym.test&token=tok123")
	assert.Contains(t, html, "tok123")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	require.Error(t, err)
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{90 * time.Second, "90 seconds"},
		{2 * time.Minute, "2 minutes"},
		{time.Hour, "1 hour"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeDuration(tt.in))
	}
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fallback", defaultFn("fallback", "  "))
	assert.Equal(t, "fallback", defaultFn("fallback", nil))
	assert.Equal(t, "fallback", defaultFn("fallback", 0))
	assert.Equal(t, "value", defaultFn("fallback", "value"))
	assert.Equal(t, 3, defaultFn("fallback", 3))
}
