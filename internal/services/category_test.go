package services

import (
	"context"
	"errors"
	"testing"

	"digieventos/internal/domain"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name    string
		repo    *mockCategoryRepository
		title   string
		wantErr error
	}{
		{
			name:  "success",
			repo:  &mockCategoryRepository{byTitle: map[string]*domain.Category{}},
			title: "Workshops",
		},
		{
			name:  "title is trimmed",
			repo:  &mockCategoryRepository{byTitle: map[string]*domain.Category{}},
			title: "  Workshops  ",
		},
		{
			name:    "empty title",
			repo:    &mockCategoryRepository{},
			title:   "   ",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "duplicate title",
			repo: &mockCategoryRepository{byTitle: map[string]*domain.Category{
				"Workshops": {ID: "cat-1", Title: "Workshops"},
			}},
			title:   "Workshops",
			wantErr: domain.ErrDuplicateTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategoryService(tt.repo)
			got, err := svc.Create(context.Background(), tt.title, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != "Workshops" {
				t.Errorf("expected trimmed title, got %q", got.Title)
			}
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	t.Run("same title skips the conflict check", func(t *testing.T) {
		repo := &mockCategoryRepository{
			categories: map[string]*domain.Category{"cat-1": {ID: "cat-1", Title: "Talks"}},
			byTitle:    map[string]*domain.Category{"Talks": {ID: "cat-1", Title: "Talks"}},
		}
		svc := NewCategoryService(repo)
		title := "Talks"
		got, err := svc.Update(context.Background(), "cat-1", &title, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "Talks" {
			t.Errorf("unexpected title %q", got.Title)
		}
	})

	t.Run("new title conflicting with another category", func(t *testing.T) {
		repo := &mockCategoryRepository{
			categories: map[string]*domain.Category{"cat-1": {ID: "cat-1", Title: "Talks"}},
			byTitle:    map[string]*domain.Category{"Workshops": {ID: "cat-2", Title: "Workshops"}},
		}
		svc := NewCategoryService(repo)
		title := "Workshops"
		if _, err := svc.Update(context.Background(), "cat-1", &title, nil); !errors.Is(err, domain.ErrDuplicateTitle) {
			t.Fatalf("expected ErrDuplicateTitle, got %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		svc := NewCategoryService(&mockCategoryRepository{categories: map[string]*domain.Category{}})
		title := "Talks"
		if _, err := svc.Update(context.Background(), "cat-9", &title, nil); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
