package services

import (
	"context"
	"errors"
	"fmt"

	"digieventos/internal/domain"
)

type registrationService struct {
	participantRepo domain.ParticipantRepository
}

// NewRegistrationService creates the registration core with the given
// participant repository.
func NewRegistrationService(participantRepo domain.ParticipantRepository) domain.RegistrationService {
	return &registrationService{
		participantRepo: participantRepo,
	}
}

// RegisterForEvent admits the user to the event. The admission decision
// (event exists and is not cancelled, no active registration yet, capacity
// not exceeded) and the row mutation execute as one atomic unit in the
// repository, so concurrent registrations racing at the capacity boundary
// cannot both succeed. Retries are safe: a repeat call either reports
// ErrAlreadyRegistered or runs the state machine freshly.
func (s *registrationService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	if eventID == "" || userID == "" {
		return nil, false, domain.ErrInvalidInput
	}
	reg, created, err := s.participantRepo.Register(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrAlreadyRegistered) ||
			errors.Is(err, domain.ErrEventFull) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("register participant: %w", err)
	}
	return reg, created, nil
}

func (s *registrationService) CancelRegistration(ctx context.Context, registrationID, userID string) error {
	if registrationID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.participantRepo.Cancel(ctx, registrationID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

func (s *registrationService) GetUserRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error) {
	regs, err := s.participantRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}
