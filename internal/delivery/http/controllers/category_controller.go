package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"digieventos/internal/delivery/http/helpers"
	"digieventos/internal/domain"
)

type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// Get godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [get]
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid categoryID")
		return
	}

	category, err := c.Service.GetByID(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// CategoryRequest is the request body for POST /categories and PATCH /categories/{categoryID}.
type CategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate implements helpers.Validator.
func (r *CategoryRequest) Validate() []string {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return []string{"title must not be empty"}
	}
	return nil
}

// Create godoc
// @Summary Create a category
// @Description Creates a category with a unique title.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CategoryRequest true "New category"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid input or duplicate title)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [post]
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Title == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "title is required")
		return
	}

	category, err := c.Service.Create(r.Context(), *req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
		case errors.Is(err, domain.ErrDuplicateTitle):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "category title already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Description Updates the title or description of a category. Omitted fields are left unchanged.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Param body body controllers.CategoryRequest true "Changes"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid input or duplicate title)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [patch]
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid categoryID")
		return
	}

	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	category, err := c.Service.Update(r.Context(), categoryID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
		case errors.Is(err, domain.ErrDuplicateTitle):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "category title already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Removes the category; links to events are removed with it.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [delete]
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid categoryID")
		return
	}

	if err := c.Service.Delete(r.Context(), categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
