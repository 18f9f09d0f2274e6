package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/pkg/auth"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthenticator_Require(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	authn := NewAuthenticator(tokens)

	var seen Identity
	handler := authn.Require(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		RespondOK(w, http.StatusOK, "", nil)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header required", decodeEnvelope(t, rec).Error)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tokens.GenerateToken(7, "ana@example.com", "user")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, Identity{UserID: 7, Email: "ana@example.com", Role: "user"}, seen)
	})
}

func TestAuthenticator_Admin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	handler := NewAuthenticator(tokens).Admin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	userToken, _ := tokens.GenerateToken(1, "u@example.com", "user")
	adminToken, _ := tokens.GenerateToken(2, "a@example.com", RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticator_OptionalIgnoresBadToken(t *testing.T) {
	authn := NewAuthenticator(auth.NewTokenManager("secret", time.Hour))

	var authenticated bool
	handler := authn.Optional(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated = IdentityFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler(httptest.NewRecorder(), req)
	assert.False(t, authenticated)
}

func TestSessionMiddleware(t *testing.T) {
	var got string
	handler := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	t.Run("header wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SessionHeader, "abc")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc", got)
		assert.Equal(t, "abc", rec.Header().Get(SessionHeader))
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "cookie", got)
	})

	t.Run("minted when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, got)
		assert.Equal(t, got, rec.Header().Get(SessionHeader))
		assert.Contains(t, rec.Header().Get("Set-Cookie"), SessionCookie+"="+got)
	})
}

func TestMetrics_Wrap(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test_service", reg)

	handler := m.Wrap("/api/things", func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, http.StatusNotFound, "nope")
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/things", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "test_service_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		metric := mf.GetMetric()[0]
		assert.Equal(t, 1.0, metric.GetCounter().GetValue())
		for _, label := range metric.GetLabel() {
			if label.GetName() == "status" {
				assert.Equal(t, "404", label.GetValue())
			}
		}
		found = true
	}
	assert.True(t, found)
}

func TestDecodeJSON_RejectsGarbage(t *testing.T) {
	var dst struct{ Name string }
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = http.NoBody

	assert.False(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
