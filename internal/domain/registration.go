package domain

import (
	"context"
	"time"
)

// EventSnapshot is the denormalized slice of event data returned with a
// registration. It reflects the event as read by the operation that produced
// it, not a separate later read.
type EventSnapshot struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   time.Time  `json:"start_time"`
	FinishTime  *time.Time `json:"finish_time"`
	MaxCapacity *int       `json:"max_capacity"`
}

// Registration is a participant row joined with its event snapshot. A
// registration is active iff CancelledParticipation is false; RegisteredAt is
// set on first creation and survives cancellation and re-activation.
// swagger:model Registration
type Registration struct {
	ID                     string         `json:"id"`
	UserID                 string         `json:"user_id"`
	EventID                string         `json:"event_id"`
	RegisteredAt           time.Time      `json:"registered_at"`
	CancelledParticipation bool           `json:"cancelled_participation"`
	CancelledAt            *time.Time     `json:"cancelled_at"`
	Event                  *EventSnapshot `json:"event"`
}

// ParticipantRepository defines storage operations for registrations.
type ParticipantRepository interface {
	// Register runs the whole admission state machine as one atomic unit
	// against the store: it locks the event row, rejects missing or cancelled
	// events with ErrNotFound, rejects an existing active registration with
	// ErrAlreadyRegistered, enforces max_capacity with ErrEventFull, and then
	// either re-activates the caller's cancelled row (keeping the original id
	// and registered_at) or inserts a fresh one. Returns created=true only
	// for a fresh insert.
	Register(ctx context.Context, eventID, userID string) (reg *Registration, created bool, err error)
	// Cancel marks the registration cancelled. Ownership is part of the
	// update predicate: a row that exists but belongs to another user yields
	// ErrNotFound. The predicate is state-independent, so cancelling twice
	// succeeds silently.
	Cancel(ctx context.Context, registrationID, userID string) error
	// ListByUser returns the user's registrations (cancelled participations
	// included) joined with their events, excluding registrations whose event
	// is cancelled, ordered by registered_at ascending.
	ListByUser(ctx context.Context, userID string) ([]*Registration, error)
	// ListActiveByEventIDs returns the active participants of each given
	// event with user summaries, keyed by event ID.
	ListActiveByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*ParticipantInfo, error)
}

// RegistrationService is the registration core exposed to the HTTP layer.
type RegistrationService interface {
	RegisterForEvent(ctx context.Context, eventID, userID string) (reg *Registration, created bool, err error)
	CancelRegistration(ctx context.Context, registrationID, userID string) error
	GetUserRegistrations(ctx context.Context, userID string) ([]*Registration, error)
}
