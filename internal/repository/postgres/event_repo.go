package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"digieventos/internal/domain"
)

const eventColumns = `id, title, description, location, start_time, finish_time, max_capacity, image_url, created_by, created_at, updated_at, cancelled_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull, imageNull sql.NullString
	var finishNull, cancelledNull sql.NullTime
	var capNull sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &locNull, &e.StartTime, &finishNull, &capNull,
		&imageNull, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &cancelledNull,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	if finishNull.Valid {
		e.FinishTime = &finishNull.Time
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		e.MaxCapacity = &c
	}
	if imageNull.Valid {
		e.ImageURL = &imageNull.String
	}
	if cancelledNull.Valid {
		e.CancelledAt = &cancelledNull.Time
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	const query = `
		INSERT INTO events (title, description, location, start_time, finish_time, max_capacity, image_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartTime, e.FinishTime, e.MaxCapacity, e.ImageURL, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetActiveByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND cancelled_at IS NULL`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE cancelled_at IS NULL ORDER BY start_time ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", n))
		args = append(args, *upd.StartTime)
		n++
	}
	if upd.FinishTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("finish_time = $%d", n))
		args = append(args, *upd.FinishTime)
		n++
	}
	if upd.MaxCapacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("max_capacity = $%d", n))
		args = append(args, *upd.MaxCapacity)
		n++
	}
	if upd.ClearImage {
		setClauses = append(setClauses, "image_url = NULL")
	} else if upd.ImageURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("image_url = $%d", n))
		args = append(args, *upd.ImageURL)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) SetCancelled(ctx context.Context, id string) error {
	const query = `
		UPDATE events
		SET cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND cancelled_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ReplaceCategories(ctx context.Context, eventID string, categoryIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace categories tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_category WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		const insertQuery = `
			INSERT INTO event_category (event_id, category_id)
			SELECT $1, unnest($2::uuid[])
		`
		if _, err := tx.ExecContext(ctx, insertQuery, eventID, pq.Array(categoryIDs)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
