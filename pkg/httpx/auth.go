package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/logger"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
	roleKey   contextKey = "role"
)

// RoleAdmin is the role required by back-office routes
const RoleAdmin = "admin"

// Identity is the authenticated caller attached to a request context
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// IdentityFromContext returns the caller identity if the request was authenticated
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	if !ok {
		return Identity{}, false
	}
	email, _ := ctx.Value(emailKey).(string)
	role, _ := ctx.Value(roleKey).(string)
	return Identity{UserID: id, Email: email, Role: role}, true
}

// WithIdentity attaches an identity to ctx
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id.UserID)
	ctx = context.WithValue(ctx, emailKey, id.Email)
	return context.WithValue(ctx, roleKey, id.Role)
}

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticator provides JWT middlewares for mux handlers
type Authenticator struct {
	tokens TokenValidator
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Require rejects requests without a valid bearer token
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			logger.Warn(r.Context()).Msg("Missing authorization header")
			RespondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			logger.Warn(r.Context()).Msg("Invalid authorization header format")
			RespondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			RespondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Admin requires a valid token carrying the admin role
func (a *Authenticator) Admin(next http.HandlerFunc) http.HandlerFunc {
	return a.Require(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())
		if id.Role != RoleAdmin {
			logger.Warn(r.Context()).
				Uint("user_id", id.UserID).
				Str("role", id.Role).
				Msg("Admin access denied")
			RespondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Optional attaches the identity when a valid token is present and never rejects
func (a *Authenticator) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := a.tokens.ValidateToken(token); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), Identity{
					UserID: claims.UserID,
					Email:  claims.Email,
					Role:   claims.Role,
				}))
			}
		}
		next.ServeHTTP(w, r)
	}
}
