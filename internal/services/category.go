package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"digieventos/internal/domain"
)

type categoryService struct {
	categoryRepo domain.CategoryRepository
}

func NewCategoryService(categoryRepo domain.CategoryRepository) domain.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, title string, description *string) (*domain.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	// Friendly pre-check; the unique index still backstops races.
	if _, err := s.categoryRepo.GetByTitle(ctx, title); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check category title: %w", err)
	}

	category := &domain.Category{
		Title:       title,
		Description: description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id string, title, description *string) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, domain.ErrInvalidInput
		}
		title = &t
		if t != existing.Title {
			if _, err := s.categoryRepo.GetByTitle(ctx, t); err == nil {
				return nil, domain.ErrDuplicateTitle
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("check category title: %w", err)
			}
		}
	}

	updated, err := s.categoryRepo.Update(ctx, id, title, description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, err
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
