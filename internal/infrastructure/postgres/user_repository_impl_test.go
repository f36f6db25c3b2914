package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	"github.com/oksasatya/gym-backend/internal/infrastructure/postgres"
)

var errConnection = errors.New("connection refused")

var userColumnNames = []string{
	"id", "email", "password", "name", "phone", "height", "weight", "age", "gender", "fitness_goal", "avatar_url",
	"reset_token", "token_expiry", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func strPtr(s string) *string { return &s }

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	user := &entity.User{
		Email: "member@gym.test", Password: "$2a$12$hash", Name: "Member", Phone: "555",
		Height: 180, Weight: 80, Age: 30, Gender: "f", FitnessGoal: "strength",
		CreatedAt: now, UpdatedAt: now,
	}

	t.Run("inserts and returns id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Password, user.Name, user.Phone, user.Height, user.Weight, user.Age,
				user.Gender, user.FitnessGoal, user.CreatedAt, user.UpdatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("user-1"))

		u := *user
		err := postgres.NewUserRepository(mock).Create(ctx, &u)

		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Password, user.Name, user.Phone, user.Height, user.Weight, user.Age,
				user.Gender, user.FitnessGoal, user.CreatedAt, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		u := *user
		err := postgres.NewUserRepository(mock).Create(ctx, &u)

		require.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found without reset token", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("member@gym.test").
			WillReturnRows(pgxmock.NewRows(userColumnNames).AddRow(
				"user-1", "member@gym.test", "$2a$12$hash", "Member", "555", 180.0, 80.0, 30, "f", "strength", "",
				(*string)(nil), (*time.Time)(nil), now, now,
			))

		u, err := postgres.NewUserRepository(mock).GetByEmail(ctx, "member@gym.test")

		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.Equal(t, 30, u.Age)
		assert.False(t, u.HasResetToken())
	})

	t.Run("found with reset token", func(t *testing.T) {
		expiry := now.Add(2 * time.Minute)
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("member@gym.test").
			WillReturnRows(pgxmock.NewRows(userColumnNames).AddRow(
				"user-1", "member@gym.test", "$2a$12$hash", "Member", "555", 180.0, 80.0, 30, "f", "", "",
				strPtr("tok"), &expiry, now, now,
			))

		u, err := postgres.NewUserRepository(mock).GetByEmail(ctx, "member@gym.test")

		require.NoError(t, err)
		require.True(t, u.HasResetToken())
		assert.Equal(t, "tok", *u.ResetToken)
		assert.False(t, u.TokenExpired(now))
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("ghost@gym.test").
			WillReturnError(pgx.ErrNoRows)

		u, err := postgres.NewUserRepository(mock).GetByEmail(ctx, "ghost@gym.test")

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, u)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id reads as not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})

		_, err := postgres.NewUserRepository(mock).GetByID(ctx, "not-a-uuid")

		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("user-1").
			WillReturnError(errConnection)

		_, err := postgres.NewUserRepository(mock).GetByID(ctx, "user-1")

		require.ErrorIs(t, err, errConnection)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("swap applied", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users SET password = \\$3, updated_at = \\$4 WHERE id = \\$1 AND password = \\$2").
			WithArgs("user-1", "old-hash", "new-hash", at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := postgres.NewUserRepository(mock).UpdatePassword(ctx, "user-1", "old-hash", "new-hash", at)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stored hash changed underneath", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users").
			WithArgs("user-1", "old-hash", "new-hash", at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := postgres.NewUserRepository(mock).UpdatePassword(ctx, "user-1", "old-hash", "new-hash", at)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserRepository_ResetToken(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()
	expiry := at.Add(120 * time.Second)

	t.Run("set token on matching email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users SET reset_token = \\$2, token_expiry = \\$3 WHERE email = \\$1").
			WithArgs("member@gym.test", "tok", expiry).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := postgres.NewUserRepository(mock).SetResetToken(ctx, "member@gym.test", "tok", expiry)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("set token on unknown email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost@gym.test", "tok", expiry).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := postgres.NewUserRepository(mock).SetResetToken(ctx, "ghost@gym.test", "tok", expiry)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("consume clears token and is guarded by expiry", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users SET password = \\$3, reset_token = NULL, token_expiry = NULL, updated_at = \\$4 " +
			"WHERE email = \\$1 AND reset_token = \\$2 AND token_expiry >= \\$4").
			WithArgs("member@gym.test", "tok", "new-hash", at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := postgres.NewUserRepository(mock).ConsumeResetToken(ctx, "member@gym.test", "tok", "new-hash", at)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("consume storage failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE users").
			WithArgs("member@gym.test", "tok", "new-hash", at).
			WillReturnError(errConnection)

		ok, err := postgres.NewUserRepository(mock).ConsumeResetToken(ctx, "member@gym.test", "tok", "new-hash", at)

		require.ErrorIs(t, err, errConnection)
		assert.False(t, ok)
	})
}

func TestUserRepository_ListByPassword(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE password = \\$1").
		WithArgs("RESETME").
		WillReturnRows(pgxmock.NewRows(userColumnNames).
			AddRow("user-1", "a@gym.test", "RESETME", "A", "", 0.0, 0.0, 0, "", "", "",
				(*string)(nil), (*time.Time)(nil), now, now).
			AddRow("user-2", "b@gym.test", "RESETME", "B", "", 0.0, 0.0, 0, "", "", "",
				(*string)(nil), (*time.Time)(nil), now, now))

	users, err := postgres.NewUserRepository(mock).ListByPassword(ctx, "RESETME")

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@gym.test", users[1].Email)
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()
	mock := newMock(t)
	mock.ExpectExec("UPDATE users SET avatar_url").
		WithArgs("user-1", "https://cdn/avatar.png", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := postgres.NewUserRepository(mock).UpdateAvatar(ctx, "user-1", "https://cdn/avatar.png", at)

	require.ErrorIs(t, err, repository.ErrNotFound)
}
