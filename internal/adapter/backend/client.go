package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	domain "user-directory-web/internal/domain/user"
	apperrors "user-directory-web/pkg/errors"
	"user-directory-web/pkg/logger"
)

const (
	usersPath = "/users"
	listKey   = "list"

	// maxErrorBodyBytes bounds the response excerpt kept on a BackendError
	maxErrorBodyBytes = 512
)

// Config holds configuration for the users backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// UserClient talks to the REST users backend.
// It implements user.Repository.
type UserClient struct {
	baseURL *url.URL
	http    *http.Client
	log     *zap.Logger
	timeout time.Duration
	group   singleflight.Group
}

// NewUserClient creates a new backend client. A nil httpClient uses a
// client bounded by cfg.Timeout.
func NewUserClient(cfg Config, httpClient *http.Client, log *zap.Logger) (*UserClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q: scheme and host are required", cfg.BaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &UserClient{
		baseURL: base,
		http:    httpClient,
		log:     log,
		timeout: cfg.Timeout,
	}, nil
}

// List fetches the full user collection in backend order.
// Concurrent calls share a single in-flight request. A caller that gives up
// only stops waiting; the shared request keeps running for the others.
func (c *UserClient) List(ctx context.Context) ([]domain.User, error) {
	ch := c.group.DoChan(listKey, func() (any, error) {
		fetchCtx, cancel := c.detached(ctx)
		defer cancel()

		var users []domain.User
		if err := c.do(fetchCtx, "list users", http.MethodGet, usersPath, nil, &users); err != nil {
			return nil, err
		}
		return users, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.NewTransportError("list users", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		users := res.Val.([]domain.User)
		if res.Shared {
			logger.WithContext(ctx, c.log).Debug("shared in-flight user list", zap.Int("count", len(users)))
			// Callers own their slice
			users = append([]domain.User(nil), users...)
		}
		return users, nil
	}
}

// Create posts a new user. The response body is not used.
func (c *UserClient) Create(ctx context.Context, f domain.Fields) error {
	return c.write(ctx, "create user", http.MethodPost, usersPath, f)
}

// Replace sends a full replace of the user with the given id.
func (c *UserClient) Replace(ctx context.Context, id domain.ID, f domain.Fields) error {
	return c.write(ctx, "update user", http.MethodPut, userPath(id), f)
}

// Delete removes the user with the given id.
func (c *UserClient) Delete(ctx context.Context, id domain.ID) error {
	return c.write(ctx, "delete user", http.MethodDelete, userPath(id), nil)
}

// write performs a mutating call. Any list already in flight may predate it,
// so later List calls start a new fetch. A failed write may still have been
// applied by the backend, so this holds either way.
func (c *UserClient) write(ctx context.Context, op, method, path string, body any) error {
	defer c.group.Forget(listKey)
	return c.do(ctx, op, method, path, body, nil)
}

// detached keeps ctx values such as the request id but not its cancellation.
// The client timeout still bounds the call.
func (c *UserClient) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// userPath returns /users/{id} with the id escaped as a single segment.
func userPath(id domain.ID) string {
	return usersPath + "/" + url.PathEscape(id.String())
}

// do performs one backend call. A non-nil body is sent as JSON and a
// non-nil out receives the decoded JSON response.
func (c *UserClient) do(ctx context.Context, op, method, path string, body, out any) error {
	log := logger.WithContext(ctx, c.log).With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
	)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	// path is already escaped
	target := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if out != nil {
		req.Header.Set("Accept", "application/json")
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set(logger.RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("backend request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Warn("backend returned non-2xx status")
		return apperrors.NewBackendError(method, path, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debug("backend request succeeded")
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode backend response", zap.Error(err))
		return apperrors.NewDecodeError(op, err)
	}

	log.Debug("backend request succeeded")
	return nil
}
