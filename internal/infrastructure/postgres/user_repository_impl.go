package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

const userColumns = `id, email, password, name, phone, height, weight, age, gender, fitness_goal, avatar_url,
		reset_token, token_expiry, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Phone, &u.Height, &u.Weight, &u.Age,
		&u.Gender, &u.FitnessGoal, &u.AvatarURL, &u.ResetToken, &u.TokenExpiry, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, name, phone, height, weight, age, gender, fitness_goal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, u.Email, u.Password, u.Name, u.Phone, u.Height, u.Weight, u.Age, u.Gender, u.FitnessGoal, u.CreatedAt, u.UpdatedAt)

	return mapErr(row.Scan(&u.ID))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// ListByPassword returns users whose password column holds exactly password.
// Only meaningful for legacy placeholder values that were never hashed.
func (r *UserRepository) ListByPassword(ctx context.Context, password string) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE password = $1 ORDER BY created_at`, password)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, currentHash, newHash string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $3, updated_at = $4
		WHERE id = $1 AND password = $2
	`, id, currentHash, newHash, at)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET avatar_url = $2, updated_at = $3 WHERE id = $1`, id, avatarURL, at)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_token = $2, token_expiry = $3
		WHERE email = $1
	`, email, token, expiry)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, email, token string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND reset_token = $2`, email, token))
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, email, token, newHash string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $3, reset_token = NULL, token_expiry = NULL, updated_at = $4
		WHERE email = $1 AND reset_token = $2 AND token_expiry >= $4
	`, email, token, newHash, at)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
