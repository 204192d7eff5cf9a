package domain

import (
	"context"
	"time"
)

// Category labels events; titles are unique.
// swagger:model Category
type Category struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRepository defines the interface for category storage.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByTitle(ctx context.Context, title string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	// ListByEventIDs returns the categories linked to each of the given
	// events, keyed by event ID.
	ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*Category, error)
	Update(ctx context.Context, id string, title, description *string) (*Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryService defines category management operations.
type CategoryService interface {
	Create(ctx context.Context, title string, description *string) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id string, title, description *string) (*Category, error)
	Delete(ctx context.Context, id string) error
}
