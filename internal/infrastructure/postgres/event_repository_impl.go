package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventcal/calendar-api/internal/domain/entity"
	"github.com/eventcal/calendar-api/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(e *entity.Event) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, location, date, time, free_slots, date_range, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.Location, e.Date, e.Time, e.FreeSlots, e.DateRange, e.OwnerID)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(id string) (*entity.Event, error) {
	ctx := context.Background()
	e := &entity.Event{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, location, date, time, free_slots, date_range, owner_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id)

	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Date, &e.Time,
		&e.FreeSlots, &e.DateRange, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

func (r *EventRepository) GetAll() ([]*entity.Event, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, location, date, time, free_slots, date_range, owner_id, created_at, updated_at
		FROM events
		ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		e := &entity.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Date, &e.Time,
			&e.FreeSlots, &e.DateRange, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(e *entity.Event) error {
	ctx := context.Background()
	e.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, location = $3, date = $4, time = $5,
		    free_slots = $6, date_range = $7, updated_at = $8
		WHERE id = $9
	`, e.Title, e.Description, e.Location, e.Date, e.Time, e.FreeSlots, e.DateRange, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *EventRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListParticipants(eventID string) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.username, u.password_hash, u.address, u.created_at, u.updated_at
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1
		ORDER BY ep.joined_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Address,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddParticipant is idempotent; joining twice is a no-op.
func (r *EventRepository) AddParticipant(eventID, userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	return err
}

func (r *EventRepository) RemoveParticipant(eventID, userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		DELETE FROM event_participants
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	return err
}

var _ repository.EventRepository = (*EventRepository)(nil)
