package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"digieventos/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

// Register executes the admission state machine in a single transaction.
// The event row is locked with FOR UPDATE so that concurrent registrations
// for the same event serialize: the capacity count and the insert observe a
// consistent snapshot and cannot interleave near the capacity boundary.
func (r *participantRepository) Register(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback()

	const eventQuery = `
		SELECT id, title, description, location, start_time, finish_time, max_capacity
		FROM events
		WHERE id = $1 AND cancelled_at IS NULL
		FOR UPDATE
	`
	ev := &domain.EventSnapshot{}
	var descNull, locNull sql.NullString
	var finishNull sql.NullTime
	var capNull sql.NullInt64
	err = tx.QueryRowContext(ctx, eventQuery, eventID).Scan(
		&ev.ID, &ev.Title, &descNull, &locNull, &ev.StartTime, &finishNull, &capNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, err
	}
	if descNull.Valid {
		ev.Description = &descNull.String
	}
	if locNull.Valid {
		ev.Location = &locNull.String
	}
	if finishNull.Valid {
		ev.FinishTime = &finishNull.Time
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		ev.MaxCapacity = &c
	}

	const existingQuery = `
		SELECT id, cancelled_participation
		FROM event_participant
		WHERE user_id = $1 AND event_id = $2
	`
	var existingID string
	var cancelled bool
	err = tx.QueryRowContext(ctx, existingQuery, userID, eventID).Scan(&existingID, &cancelled)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	if hasExisting && !cancelled {
		return nil, false, domain.ErrAlreadyRegistered
	}

	// Capacity applies before any mutation, to fresh registrations and
	// re-activations alike: re-activation is new occupancy. The caller's own
	// cancelled row is inactive and therefore not counted.
	if ev.MaxCapacity != nil {
		const countQuery = `
			SELECT COUNT(*)
			FROM event_participant
			WHERE event_id = $1 AND cancelled_participation = FALSE
		`
		var active int
		if err := tx.QueryRowContext(ctx, countQuery, eventID).Scan(&active); err != nil {
			return nil, false, err
		}
		if active >= *ev.MaxCapacity {
			return nil, false, domain.ErrEventFull
		}
	}

	reg := &domain.Registration{
		UserID:  userID,
		EventID: eventID,
		Event:   ev,
	}
	if hasExisting {
		// Re-activate the cancelled row; registered_at is not reset.
		const reactivateQuery = `
			UPDATE event_participant
			SET cancelled_participation = FALSE, cancelled_at = NULL
			WHERE id = $1
			RETURNING id, registered_at
		`
		err = tx.QueryRowContext(ctx, reactivateQuery, existingID).Scan(&reg.ID, &reg.RegisteredAt)
	} else {
		const insertQuery = `
			INSERT INTO event_participant (user_id, event_id)
			VALUES ($1, $2)
			RETURNING id, registered_at
		`
		err = tx.QueryRowContext(ctx, insertQuery, userID, eventID).Scan(&reg.ID, &reg.RegisteredAt)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, domain.ErrInternal
		}
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit registration tx: %w", err)
	}
	return reg, !hasExisting, nil
}

func (r *participantRepository) Cancel(ctx context.Context, registrationID, userID string) error {
	// Ownership lives in the predicate; no state condition, so a second
	// cancel matches the row again and succeeds silently.
	const query = `
		UPDATE event_participant
		SET cancelled_participation = TRUE, cancelled_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query, registrationID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *participantRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	const query = `
		SELECT p.id, p.user_id, p.event_id, p.registered_at, p.cancelled_participation, p.cancelled_at,
		       e.id, e.title, e.description, e.location, e.start_time, e.finish_time, e.max_capacity
		FROM event_participant p
		JOIN events e ON e.id = p.event_id
		WHERE p.user_id = $1 AND e.cancelled_at IS NULL
		ORDER BY p.registered_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{Event: &domain.EventSnapshot{}}
		var cancelledAtNull sql.NullTime
		var descNull, locNull sql.NullString
		var finishNull sql.NullTime
		var capNull sql.NullInt64
		if err := rows.Scan(
			&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt, &reg.CancelledParticipation, &cancelledAtNull,
			&reg.Event.ID, &reg.Event.Title, &descNull, &locNull, &reg.Event.StartTime, &finishNull, &capNull,
		); err != nil {
			return nil, err
		}
		if cancelledAtNull.Valid {
			reg.CancelledAt = &cancelledAtNull.Time
		}
		if descNull.Valid {
			reg.Event.Description = &descNull.String
		}
		if locNull.Valid {
			reg.Event.Location = &locNull.String
		}
		if finishNull.Valid {
			reg.Event.FinishTime = &finishNull.Time
		}
		if capNull.Valid {
			c := int(capNull.Int64)
			reg.Event.MaxCapacity = &c
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *participantRepository) ListActiveByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.ParticipantInfo, error) {
	result := make(map[string][]*domain.ParticipantInfo)
	if len(eventIDs) == 0 {
		return result, nil
	}
	const query = `
		SELECT p.id, p.event_id, p.user_id, p.registered_at,
		       u.id, u.name, u.email, u.avatar_url
		FROM event_participant p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = ANY($1) AND p.cancelled_participation = FALSE
		ORDER BY p.registered_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		info := &domain.ParticipantInfo{User: &domain.UserSummary{}}
		var eventID string
		var avatarNull sql.NullString
		if err := rows.Scan(
			&info.ID, &eventID, &info.UserID, &info.RegisteredAt,
			&info.User.ID, &info.User.Name, &info.User.Email, &avatarNull,
		); err != nil {
			return nil, err
		}
		if avatarNull.Valid {
			info.User.AvatarURL = &avatarNull.String
		}
		result[eventID] = append(result[eventID], info)
	}
	return result, rows.Err()
}
