package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(rl *RateLimiter) *fiber.App {
	app := fiber.New()
	app.Get("/", rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func get(t *testing.T, app *fiber.App, session string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	_, client := newRedis(t)
	rl := NewRateLimiter(client, 2, time.Minute)
	tick := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	app := limitedApp(rl)

	first := get(t, app, "s1")
	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "2", first.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header.Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get(t, app, "s1").StatusCode)

	blocked := get(t, app, "s1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.StatusCode)
	assert.NotEmpty(t, blocked.Header.Get("Retry-After"))

	assert.Equal(t, http.StatusOK, get(t, app, "s2").StatusCode, "other sessions have their own window")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	_, client := newRedis(t)
	rl := NewRateLimiter(client, 1, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }
	app := limitedApp(rl)

	assert.Equal(t, http.StatusOK, get(t, app, "s1").StatusCode)
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusTooManyRequests, get(t, app, "s1").StatusCode)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, get(t, app, "s1").StatusCode)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	app := limitedApp(NewRateLimiter(client, 1, time.Minute))
	assert.Equal(t, http.StatusOK, get(t, app, "s1").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, "s1").StatusCode)
}
