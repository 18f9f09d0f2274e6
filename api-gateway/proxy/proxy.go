// Package proxy forwards gateway traffic to the storefront instances
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/api-gateway/loadbalancer"
	"github.com/tair/storefront/pkg/logger"
)

var errNoInstances = errors.New("no upstream instances configured")

// hop-by-hop headers are never forwarded. The gateway compresses responses
// itself, so upstream traffic stays uncompressed.
var hopHeaders = map[string]bool{
	"accept-encoding":   true,
	"connection":        true,
	"keep-alive":        true,
	"transfer-encoding": true,
	"upgrade":           true,
	"host":              true,
	"content-length":    true,
}

// ReverseProxy sends requests to one upstream, spreading them round-robin
type ReverseProxy struct {
	upstream config.UpstreamConfig
	client   *http.Client
	balancer *loadbalancer.RoundRobin
}

// NewReverseProxy creates a proxy for the configured upstream
func NewReverseProxy(upstream config.UpstreamConfig) *ReverseProxy {
	return &ReverseProxy{
		upstream: upstream,
		balancer: loadbalancer.NewRoundRobin(upstream.Instances),
		client: &http.Client{
			Timeout:   upstream.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Balancer exposes the instance pool for the status page
func (p *ReverseProxy) Balancer() *loadbalancer.RoundRobin {
	return p.balancer
}

// Handler returns a fiber handler proxying every request it receives
func (p *ReverseProxy) Handler() fiber.Handler {
	return p.ProxyRequest
}

// ProxyRequest forwards the request. A transport failure moves on to the
// next instance, up to the configured number of retries.
func (p *ReverseProxy) ProxyRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	attempts := p.upstream.Retries + 1
	if n := len(p.balancer.Servers()); attempts > n {
		attempts = n
	}

	var lastErr error = errNoInstances
	for i := 0; i < attempts; i++ {
		server := p.balancer.Next()
		resp, err := p.forward(ctx, c, server)
		if err != nil {
			lastErr = err
			logger.Warn(ctx).
				Err(err).
				Str("upstream", p.upstream.Name).
				Str("instance", server).
				Int("attempt", i+1).
				Msg("Upstream request failed")
			continue
		}
		return p.respond(c, resp)
	}

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"success": false,
		"message": "Failed to reach storefront",
		"error":   lastErr.Error(),
	})
}

func (p *ReverseProxy) forward(ctx context.Context, c *fiber.Ctx, server string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, c.Method(), targetURL(c, server), bytes.NewReader(c.Body()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		if !hopHeaders[strings.ToLower(string(key))] {
			req.Header.Add(string(key), string(value))
		}
	})
	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())

	logger.Debug(ctx).
		Str("instance", server).
		Str("path", c.Path()).
		Msg("Forwarding request")

	return p.client.Do(req)
}

func (p *ReverseProxy) respond(c *fiber.Ctx, resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read storefront response",
		})
	}

	for key, values := range resp.Header {
		if hopHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			c.Response().Header.Add(key, value)
		}
	}
	c.Status(resp.StatusCode)
	return c.Send(body)
}

func targetURL(c *fiber.Ctx, server string) string {
	target := server + string(c.Request().URI().Path())
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		target += "?" + qs
	}
	return target
}
