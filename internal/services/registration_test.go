package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"digieventos/internal/domain"
)

func TestRegistrationService_RegisterForEvent(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	reg := &domain.Registration{
		ID:           "reg-1",
		UserID:       "u1",
		EventID:      "e1",
		RegisteredAt: now,
		Event:        &domain.EventSnapshot{ID: "e1", Title: "Go Meetup"},
	}

	tests := []struct {
		name        string
		repo        *mockParticipantRepository
		eventID     string
		userID      string
		wantErr     error
		wantCreated bool
	}{
		{
			name:        "new registration",
			repo:        &mockParticipantRepository{reg: reg, created: true},
			eventID:     "e1",
			userID:      "u1",
			wantCreated: true,
		},
		{
			name:        "reactivated registration",
			repo:        &mockParticipantRepository{reg: reg, created: false},
			eventID:     "e1",
			userID:      "u1",
			wantCreated: false,
		},
		{
			name:    "missing event id",
			repo:    &mockParticipantRepository{},
			eventID: "",
			userID:  "u1",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "event not found passes through",
			repo:    &mockParticipantRepository{err: domain.ErrNotFound},
			eventID: "e1",
			userID:  "u1",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "already registered passes through",
			repo:    &mockParticipantRepository{err: domain.ErrAlreadyRegistered},
			eventID: "e1",
			userID:  "u1",
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name:    "event full passes through",
			repo:    &mockParticipantRepository{err: domain.ErrEventFull},
			eventID: "e1",
			userID:  "u1",
			wantErr: domain.ErrEventFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRegistrationService(tt.repo)
			got, created, err := svc.RegisterForEvent(context.Background(), tt.eventID, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("expected created=%v, got %v", tt.wantCreated, created)
			}
			if got == nil || got.ID != "reg-1" {
				t.Errorf("expected registration reg-1, got %+v", got)
			}
			if got.Event == nil || got.Event.Title != "Go Meetup" {
				t.Errorf("expected event snapshot on response, got %+v", got.Event)
			}
		})
	}
}

func TestRegistrationService_CancelRegistration(t *testing.T) {
	t.Run("forwards the caller as owner", func(t *testing.T) {
		repo := &mockParticipantRepository{}
		svc := NewRegistrationService(repo)
		if err := svc.CancelRegistration(context.Background(), "reg-1", "u1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.cancelCalls) != 1 || repo.cancelCalls[0] != [2]string{"reg-1", "u1"} {
			t.Errorf("expected cancel call for (reg-1, u1), got %v", repo.cancelCalls)
		}
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &mockParticipantRepository{cancelErr: domain.ErrNotFound}
		svc := NewRegistrationService(repo)
		if err := svc.CancelRegistration(context.Background(), "reg-1", "u2"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing ids are rejected", func(t *testing.T) {
		svc := NewRegistrationService(&mockParticipantRepository{})
		if err := svc.CancelRegistration(context.Background(), "", "u1"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRegistrationService_GetUserRegistrations(t *testing.T) {
	t.Run("nil slice becomes empty", func(t *testing.T) {
		svc := NewRegistrationService(&mockParticipantRepository{regsByUser: map[string][]*domain.Registration{}})
		regs, err := svc.GetUserRegistrations(context.Background(), "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if regs == nil || len(regs) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", regs)
		}
	})

	t.Run("returns registrations in repo order", func(t *testing.T) {
		repo := &mockParticipantRepository{regsByUser: map[string][]*domain.Registration{
			"u1": {{ID: "reg-1"}, {ID: "reg-2"}},
		}}
		svc := NewRegistrationService(repo)
		regs, err := svc.GetUserRegistrations(context.Background(), "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(regs) != 2 || regs[0].ID != "reg-1" || regs[1].ID != "reg-2" {
			t.Errorf("unexpected registrations: %v", regs)
		}
	})
}
