package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"digieventos/internal/delivery/http/helpers"
	"digieventos/internal/delivery/http/middleware"
	"digieventos/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List active events
// @Description Returns all non-cancelled events with categories, active participants, and participant counts, ordered by start time.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an active event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   time.Time  `json:"startTime"`
	FinishTime  *time.Time `json:"finishTime"`
	MaxCapacity *int       `json:"maxCapacity"`
	Image       *string    `json:"image"`
	CategoryIDs []string   `json:"categoryIds"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if r.StartTime.IsZero() {
		errs = append(errs, "startTime is required")
	}
	if r.FinishTime != nil && !r.FinishTime.After(r.StartTime) {
		errs = append(errs, "finishTime must be after startTime")
	}
	if r.MaxCapacity != nil && *r.MaxCapacity < 1 {
		errs = append(errs, "maxCapacity must be at least 1")
	}
	for _, id := range r.CategoryIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "categoryIds must be UUIDs")
			break
		}
	}
	return errs
}

// Create godoc
// @Summary Create an event
// @Description Creates an event owned by the caller. The image is a base64 data URI and is uploaded to object storage.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "New event"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	in := &domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		FinishTime:  req.FinishTime,
		MaxCapacity: req.MaxCapacity,
		Image:       req.Image,
		CategoryIDs: req.CategoryIDs,
	}
	event, err := c.Service.Create(r.Context(), in, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Omitted fields are left unchanged; categoryIds, when present, replaces the
// full category set.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"startTime"`
	FinishTime  *time.Time `json:"finishTime"`
	MaxCapacity *int       `json:"maxCapacity"`
	Image       *string    `json:"image"`
	ClearImage  bool       `json:"clearImage"`
	CategoryIDs *[]string  `json:"categoryIds"`
}

// Validate implements helpers.Validator.
func (r *UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if r.MaxCapacity != nil && *r.MaxCapacity < 1 {
		errs = append(errs, "maxCapacity must be at least 1")
	}
	if r.CategoryIDs != nil {
		for _, id := range *r.CategoryIDs {
			if !uuidRegex.MatchString(id) {
				errs = append(errs, "categoryIds must be UUIDs")
				break
			}
		}
	}
	return errs
}

// Update godoc
// @Summary Update an event
// @Description Updates fields of an active event. Only the creator or an owner may update it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.UpdateEventRequest true "Changes"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	in := &domain.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		FinishTime:  req.FinishTime,
		MaxCapacity: req.MaxCapacity,
		Image:       req.Image,
		ClearImage:  req.ClearImage,
	}
	if req.CategoryIDs != nil {
		in.CategoryIDs = *req.CategoryIDs
		in.HasCategories = true
	}
	event, err := c.Service.Update(r.Context(), eventID, in, id.UserID, id.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to manage this event")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Cancel godoc
// @Summary Cancel an event
// @Description Soft-cancels the event. It disappears from listings and accepts no further registrations; registration history is kept. Only the creator or an owner may cancel it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancel [post]
func (c *EventController) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Cancel(r.Context(), eventID, id.UserID, id.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to manage this event")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// Delete godoc
// @Summary Delete an event
// @Description Hard-deletes the event along with its registrations and category links. Only the creator or an owner may delete it. Prefer cancel to keep registration history.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Delete(r.Context(), eventID, id.UserID, id.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to manage this event")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
