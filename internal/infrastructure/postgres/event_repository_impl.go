package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Name, &e.Date, &e.NumOfParticipants, &e.ModeOfPayment, &e.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO events (title, name, date, num_of_participants, mode_of_payment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, e.Title, e.Name, e.Date, e.NumOfParticipants, e.ModeOfPayment, e.CreatedAt)
	return mapErr(row.Scan(&e.ID))
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, `
		SELECT id, title, name, date, num_of_participants, mode_of_payment, created_at
		FROM events
		WHERE id = $1
	`, id))
}

func (r *EventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, name, date, num_of_participants, mode_of_payment, created_at
		FROM events
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, mapErr(rows.Err())
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) DecrementSlot(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE events
		SET num_of_participants = num_of_participants - 1
		WHERE id = $1 AND num_of_participants > 0
	`, id)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)

type RegistrationRepository struct {
	db DB
}

func NewRegistrationRepository(db DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Append(ctx context.Context, reg *entity.Registration) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO event_registrations (event_id, event_title, user_name, user_email, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, reg.EventID, reg.EventTitle, reg.UserName, reg.UserEmail, reg.RegisteredAt)
	return mapErr(row.Scan(&reg.ID))
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, event_title, user_name, user_email, registered_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`, eventID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.Registration{}
	for rows.Next() {
		reg := &entity.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.EventTitle, &reg.UserName, &reg.UserEmail, &reg.RegisteredAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, reg)
	}
	return out, mapErr(rows.Err())
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
