package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"digieventos/internal/domain"
)

const uniqueViolation = "23505"

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{
		DB: db,
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	const query = `
		INSERT INTO categories (title, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, c.Title, c.Description).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateTitle
		}
		return err
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
		SELECT id, title, description, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *categoryRepository) GetByTitle(ctx context.Context, title string) (*domain.Category, error) {
	const query = `
		SELECT id, title, description, created_at, updated_at
		FROM categories
		WHERE title = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, title))
}

func (r *categoryRepository) scanOne(row *sql.Row) (*domain.Category, error) {
	c := &domain.Category{}
	var descNull sql.NullString
	err := row.Scan(&c.ID, &c.Title, &descNull, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		c.Description = &descNull.String
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	const query = `
		SELECT id, title, description, created_at, updated_at
		FROM categories
		ORDER BY title ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		var descNull sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &descNull, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			c.Description = &descNull.String
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Category, error) {
	result := make(map[string][]*domain.Category)
	if len(eventIDs) == 0 {
		return result, nil
	}
	const query = `
		SELECT ec.event_id, c.id, c.title, c.description, c.created_at, c.updated_at
		FROM event_category ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id = ANY($1)
		ORDER BY c.title ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID string
		c := &domain.Category{}
		var descNull sql.NullString
		if err := rows.Scan(&eventID, &c.ID, &c.Title, &descNull, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			c.Description = &descNull.String
		}
		result[eventID] = append(result[eventID], c)
	}
	return result, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, id string, title, description *string) (*domain.Category, error) {
	const query = `
		UPDATE categories
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, created_at, updated_at
	`
	c := &domain.Category{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id, title, description).Scan(&c.ID, &c.Title, &descNull, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, err
	}
	if descNull.Valid {
		c.Description = &descNull.String
	}
	return c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
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
