package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"digieventos/internal/delivery/http/controllers"
	"digieventos/internal/delivery/http/middleware"
	"digieventos/internal/domain"
)

// Controllers groups the controllers the router wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Event        *controllers.EventController
	Category     *controllers.CategoryController
	Registration *controllers.RegistrationController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleOwner)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", c.Auth.Refresh)
	mux.HandleFunc("GET /auth/me", auth(c.Auth.Me))

	// Events: listing is public, management is staff-only.
	mux.HandleFunc("GET /events", c.Event.List)
	mux.HandleFunc("GET /events/{eventID}", c.Event.Get)
	mux.HandleFunc("POST /events", auth(staff(c.Event.Create)))
	mux.HandleFunc("PATCH /events/{eventID}", auth(staff(c.Event.Update)))
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(staff(c.Event.Cancel)))
	mux.HandleFunc("DELETE /events/{eventID}", auth(staff(c.Event.Delete)))

	// Categories
	mux.HandleFunc("GET /categories", c.Category.List)
	mux.HandleFunc("GET /categories/{categoryID}", c.Category.Get)
	mux.HandleFunc("POST /categories", auth(staff(c.Category.Create)))
	mux.HandleFunc("PATCH /categories/{categoryID}", auth(staff(c.Category.Update)))
	mux.HandleFunc("DELETE /categories/{categoryID}", auth(staff(c.Category.Delete)))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Registration.Register))
	mux.HandleFunc("GET /registrations", auth(c.Registration.ListMine))
	mux.HandleFunc("DELETE /registrations/{registrationID}", auth(c.Registration.Cancel))

	// Users
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateProfile))
	mux.HandleFunc("POST /users/me/password", auth(c.User.ChangePassword))
	mux.HandleFunc("GET /users", auth(staff(c.User.List)))
	mux.HandleFunc("POST /users", auth(staff(c.User.Create)))
	mux.HandleFunc("GET /users/{userID}", auth(staff(c.User.Get)))
	mux.HandleFunc("POST /users/{userID}/password", auth(staff(c.User.ResetPassword)))
	mux.HandleFunc("DELETE /users/{userID}", auth(staff(c.User.Delete)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
