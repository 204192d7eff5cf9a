package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"digieventos/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	categoryRepo    domain.CategoryRepository
	participantRepo domain.ParticipantRepository
	fileStore       domain.FileStore
}

func NewEventService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	participantRepo domain.ParticipantRepository,
	fileStore domain.FileStore,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		categoryRepo:    categoryRepo,
		participantRepo: participantRepo,
		fileStore:       fileStore,
	}
}

// decodeDataURI parses a base64 data URI ("data:image/png;base64,....") into
// raw bytes and a content type. A bare base64 payload is accepted with an
// octet-stream content type.
func decodeDataURI(s string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	payload := s
	if strings.HasPrefix(s, "data:") {
		semi := strings.Index(s, ";base64,")
		if semi < 0 {
			return nil, "", domain.ErrInvalidInput
		}
		contentType = s[len("data:"):semi]
		payload = s[semi+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", domain.ErrInvalidInput
	}
	return data, contentType, nil
}

func (s *eventService) uploadImage(ctx context.Context, image string) (string, error) {
	data, contentType, err := decodeDataURI(image)
	if err != nil {
		return "", err
	}
	url, err := s.fileStore.Upload(ctx, data, contentType, "events")
	if err != nil {
		return "", fmt.Errorf("upload event image: %w", err)
	}
	return url, nil
}

// assemble joins events with their categories and active participants in two
// batched queries instead of one query per event.
func (s *eventService) assemble(ctx context.Context, events []*domain.Event, includeParticipants bool) ([]*domain.EventDetails, error) {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	categoriesByEvent, err := s.categoryRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list event categories: %w", err)
	}
	participantsByEvent, err := s.participantRepo.ListActiveByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list event participants: %w", err)
	}

	details := make([]*domain.EventDetails, 0, len(events))
	for _, e := range events {
		categories := categoriesByEvent[e.ID]
		if categories == nil {
			categories = []*domain.Category{}
		}
		participants := participantsByEvent[e.ID]
		count := len(participants)
		if !includeParticipants || participants == nil {
			participants = []*domain.ParticipantInfo{}
		}
		details = append(details, &domain.EventDetails{
			Event:            *e,
			Categories:       categories,
			Participants:     participants,
			ParticipantCount: count,
		})
	}
	return details, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.EventDetails, error) {
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.assemble(ctx, events, true)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.EventDetails, error) {
	event, err := s.eventRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	details, err := s.assemble(ctx, []*domain.Event{event}, true)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *eventService) Create(ctx context.Context, in *domain.CreateEventInput, createdBy string) (*domain.EventDetails, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FinishTime != nil && !in.FinishTime.After(in.StartTime) {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxCapacity != nil && *in.MaxCapacity < 1 {
		return nil, domain.ErrInvalidInput
	}

	event := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		StartTime:   in.StartTime,
		FinishTime:  in.FinishTime,
		MaxCapacity: in.MaxCapacity,
		CreatedBy:   createdBy,
	}
	if in.Image != nil && *in.Image != "" {
		url, err := s.uploadImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		event.ImageURL = &url
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.eventRepo.ReplaceCategories(ctx, event.ID, in.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set event categories: %w", err)
		}
	}
	details, err := s.assemble(ctx, []*domain.Event{event}, false)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// canManage reports whether the caller may update, cancel, or delete the
// event: the creator always can; owners can manage any event.
func canManage(event *domain.Event, callerID, callerRole string) bool {
	return event.CreatedBy == callerID || callerRole == domain.RoleOwner
}

func (s *eventService) Update(ctx context.Context, id string, in *domain.UpdateEventInput, callerID, callerRole string) (*domain.EventDetails, error) {
	event, err := s.eventRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}

	upd := &domain.EventUpdate{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartTime:   in.StartTime,
		FinishTime:  in.FinishTime,
		MaxCapacity: in.MaxCapacity,
		ClearImage:  in.ClearImage,
	}
	if in.Image != nil && *in.Image != "" {
		url, err := s.uploadImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}

	updated, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if in.HasCategories {
		if err := s.eventRepo.ReplaceCategories(ctx, id, in.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set event categories: %w", err)
		}
	}
	details, err := s.assemble(ctx, []*domain.Event{updated}, false)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *eventService) Cancel(ctx context.Context, id, callerID, callerRole string) error {
	event, err := s.eventRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.SetCancelled(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel event: %w", err)
	}
	return nil
}

// Delete hard-deletes the event; the store cascades to registrations and
// category links. Soft-cancel (Cancel) is the way to retire an event while
// keeping its registration history.
func (s *eventService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
