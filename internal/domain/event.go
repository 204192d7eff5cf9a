package domain

import (
	"context"
	"time"
)

// Event represents an event. Nullable columns are pointers: a nil MaxCapacity
// means unlimited, a nil CancelledAt means the event is active.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   time.Time  `json:"start_time"`
	FinishTime  *time.Time `json:"finish_time"`
	MaxCapacity *int       `json:"max_capacity"`
	ImageURL    *string    `json:"image_url"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

// UserSummary is the public slice of a user embedded in event listings.
type UserSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// ParticipantInfo is an active participant as shown on an event.
type ParticipantInfo struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	RegisteredAt time.Time    `json:"registered_at"`
	User         *UserSummary `json:"user"`
}

// EventDetails is an event joined with its categories and active participants.
// swagger:model EventDetails
type EventDetails struct {
	Event
	Categories       []*Category        `json:"categories"`
	Participants     []*ParticipantInfo `json:"participants"`
	ParticipantCount int                `json:"participant_count"`
}

// EventUpdate carries a partial event update. Nil means "leave unchanged";
// ClearImage removes the image regardless of ImageURL.
type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	StartTime   *time.Time
	FinishTime  *time.Time
	MaxCapacity *int
	ImageURL    *string
	ClearImage  bool
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// GetByID returns the event regardless of cancellation state.
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetActiveByID returns the event only if cancelled_at is unset.
	GetActiveByID(ctx context.Context, id string) (*Event, error)
	// ListActive returns non-cancelled events ordered by start time.
	ListActive(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd *EventUpdate) (*Event, error)
	// SetCancelled soft-deletes: sets cancelled_at, retiring the event from
	// listings and new registrations while keeping registration history.
	SetCancelled(ctx context.Context, id string) error
	// Delete hard-deletes; the store cascades to participants and category links.
	Delete(ctx context.Context, id string) error
	// ReplaceCategories rewrites the event's category links.
	ReplaceCategories(ctx context.Context, eventID string, categoryIDs []string) error
}

// CreateEventInput is the service-level input for creating an event.
type CreateEventInput struct {
	Title       string
	Description *string
	Location    *string
	StartTime   time.Time
	FinishTime  *time.Time
	MaxCapacity *int
	// Image is an optional base64 data URI; the service uploads it and stores
	// the resulting URL.
	Image       *string
	CategoryIDs []string
}

// UpdateEventInput is the service-level input for a partial event update.
// CategoryIDs nil means "leave category links unchanged".
type UpdateEventInput struct {
	Title         *string
	Description   *string
	Location      *string
	StartTime     *time.Time
	FinishTime    *time.Time
	MaxCapacity   *int
	Image         *string
	ClearImage    bool
	CategoryIDs   []string
	HasCategories bool
}

// EventService defines the event directory operations.
type EventService interface {
	List(ctx context.Context) ([]*EventDetails, error)
	GetByID(ctx context.Context, id string) (*EventDetails, error)
	Create(ctx context.Context, in *CreateEventInput, createdBy string) (*EventDetails, error)
	Update(ctx context.Context, id string, in *UpdateEventInput, callerID, callerRole string) (*EventDetails, error)
	// Cancel retires the event (soft delete); distinct from Delete.
	Cancel(ctx context.Context, id, callerID, callerRole string) error
	Delete(ctx context.Context, id, callerID, callerRole string) error
}
