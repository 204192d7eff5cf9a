package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"digieventos/internal/delivery/http/helpers"
	"digieventos/internal/delivery/http/middleware"
	"digieventos/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Avatar   *string `json:"avatar"`
}

// Validate implements helpers.Validator.
func (r *CreateUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// Create godoc
// @Summary Create a user
// @Description Creates a user account. The role defaults to "user" when omitted. Only admins and owners may call this; owners may assign any role.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateUserRequest true "New user"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid input or email in use)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	// Admins can only create plain users; owners can assign any role.
	role := req.Role
	if role != "" && role != domain.RoleUser && id.Role != domain.RoleOwner {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only owners may assign elevated roles")
		return
	}

	user, err := c.Service.Create(r.Context(), req.Email, req.Name, req.Password, role, req.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// Get godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateProfileRequest is the request body for PATCH /users/me.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Avatar      *string `json:"avatar"`
	ClearAvatar bool    `json:"clearAvatar"`
}

// Validate implements helpers.Validator.
func (r *UpdateProfileRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		errs = append(errs, "email must not be empty")
	}
	return errs
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Updates name, email, or avatar of the authenticated user. The avatar is a base64 data URI; set clearAvatar to remove it.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid input or email in use)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	upd := &domain.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		AvatarURL:   req.Avatar,
		ClearAvatar: req.ClearAvatar,
	}
	user, err := c.Service.UpdateProfile(r.Context(), id.UserID, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// ChangePasswordRequest is the request body for POST /users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate implements helpers.Validator.
func (r *ChangePasswordRequest) Validate() []string {
	var errs []string
	if r.CurrentPassword == "" {
		errs = append(errs, "currentPassword is required")
	}
	if r.NewPassword == "" {
		errs = append(errs, "newPassword is required")
	}
	return errs
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description Verifies the current password and sets the new one. The new password must be at least 8 characters and differ from the current one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ChangePasswordRequest true "Password change"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (wrong current password)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/password [post]
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "current password is incorrect")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid new password")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// ResetPasswordRequest is the request body for POST /users/{userID}/password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// Validate implements helpers.Validator.
func (r *ResetPasswordRequest) Validate() []string {
	if r.NewPassword == "" {
		return []string{"newPassword is required"}
	}
	return nil
}

// ResetPassword godoc
// @Summary Reset another user's password
// @Description Sets a new password for the given user without the current one. Admins may reset plain users; owners may reset anyone except other owners.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body controllers.ResetPasswordRequest true "New password"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/password [post]
func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	var req ResetPasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.ResetPassword(r.Context(), userID, id.Role, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to manage this user")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid new password")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "password reset"})
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the user and cascades to their registrations. Admins may delete plain users; owners may delete anyone except other owners.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Delete(r.Context(), userID, id.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to manage this user")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
