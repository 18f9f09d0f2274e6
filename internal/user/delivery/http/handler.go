package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/user/domain"
	"github.com/tair/storefront/internal/user/usecase/command"
	"github.com/tair/storefront/internal/user/usecase/query"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	changeRoleHandler *command.ChangeRoleHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	metrics *httpx.Metrics
	authn   *httpx.Authenticator
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	metrics *httpx.Metrics,
	authn *httpx.Authenticator,
) *UserHandler {
	return &UserHandler{
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		changeRoleHandler: changeRoleHandler,
		getUserHandler:    getUserHandler,
		listHandler:       listHandler,
		metrics:           metrics,
		authn:             authn,
	}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metrics.Wrap("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metrics.Wrap("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/logout", h.metrics.Wrap("/auth/logout", h.authn.Optional(h.Logout))).Methods("POST")

	// Protected routes
	router.HandleFunc("/api/profile", h.metrics.Wrap("/api/profile", h.authn.Require(h.GetProfile))).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/admin/users", h.metrics.Wrap("/api/admin/users", h.authn.Admin(h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/admin/users/{id}/role", h.metrics.Wrap("/api/admin/users/{id}/role", h.authn.Admin(h.ChangeRole))).Methods("PUT")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondUserError(w, r, err, "Registration failed")
		return
	}

	httpx.RespondOK(w, http.StatusCreated, "Account created", user)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUserError(w, r, err, "Login failed")
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Signed in", resp)
}

// Logout handles POST /auth/logout. Tokens are stateless, so the client
// discards its copy; the call only records the sign-out.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := httpx.IdentityFromContext(r.Context()); ok {
		logger.Info(r.Context()).Uint("user_id", id.UserID).Msg("User signed out")
	}
	httpx.RespondOK(w, http.StatusOK, "Signed out", nil)
}

// GetProfile handles GET /api/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())
	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: id.UserID})
	if err != nil {
		h.respondUserError(w, r, err, "Failed to get profile")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", user)
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondUserError(w, r, err, "Failed to list users")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", users)
}

// ChangeRole handles PUT /api/admin/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.changeRoleHandler.Handle(r.Context(), command.ChangeRoleCommand{UserID: uint(id), Role: req.Role})
	if err != nil {
		h.respondUserError(w, r, err, "Failed to change role")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Role updated", user)
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidUser), errors.Is(err, domain.ErrInvalidRole):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		httpx.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		httpx.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrAccountDisabled):
		httpx.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		httpx.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
