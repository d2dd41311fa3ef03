// Package identity talks to a GoTrue-compatible authentication API
// (email/password sign-in, sign-up, sign-out and token lookup).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
)

// Error is a non-2xx answer from the provider. Message is the provider's
// own text and is meant to be shown to the user as is.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap maps auth failures onto domain.ErrUnauthorized.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if e.Code == "invalid_grant" {
			return domain.ErrUnauthorized
		}
		return domain.ErrInvalidInput
	}
	return nil
}

type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

var _ port.IdentityProvider = (*Client)(nil)

// New builds a client for the API rooted at baseURL, e.g.
// https://project.supabase.co/auth/v1.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL[%s] is not absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type userJSON struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type sessionJSON struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	User         *userJSON `json:"user"`
}

func (u userJSON) toDomain() domain.User {
	return domain.User{ID: u.ID, Email: u.Email}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	body := map[string]string{"email": email, "password": password}

	var resp sessionJSON
	if err := c.do(ctx, http.MethodPost, "token", url.Values{"grant_type": {"password"}}, "", body, &resp); err != nil {
		return domain.Session{}, err
	}
	if resp.User == nil || resp.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("sign in response has no session")
	}

	return domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    c.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		User:         resp.User.toDomain(),
	}, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}

	// the provider answers with a bare user, or with a session when
	// e-mail confirmation is off
	var resp struct {
		userJSON
		User *userJSON `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "signup", nil, "", body, &resp); err != nil {
		return domain.User{}, err
	}

	if resp.User != nil {
		return resp.User.toDomain(), nil
	}
	return resp.userJSON.toDomain(), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("%w: access token is empty", domain.ErrUnauthorized)
	}

	return c.do(ctx, http.MethodPost, "logout", nil, accessToken, nil, nil)
}

func (c *Client) User(ctx context.Context, accessToken string) (domain.User, error) {
	if accessToken == "" {
		return domain.User{}, fmt.Errorf("%w: access token is empty", domain.ErrUnauthorized)
	}

	var resp userJSON
	if err := c.do(ctx, http.MethodGet, "user", nil, accessToken, nil, &resp); err != nil {
		return domain.User{}, err
	}

	return resp.toDomain(), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		providerErr := parseError(resp.StatusCode, data)
		c.logger.Debug("identity provider error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", providerErr.Code))
		return providerErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

// parseError reads the several error shapes GoTrue has used over time.
func parseError(status int, data []byte) *Error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.Unmarshal(data, &body)

	out := &Error{Status: status, Code: body.ErrorCode}
	if out.Code == "" {
		out.Code = body.Error
	}

	for _, msg := range []string{body.ErrorDescription, body.Msg, body.Message, body.Error} {
		if msg != "" {
			out.Message = msg
			break
		}
	}
	if out.Message == "" {
		out.Message = http.StatusText(status)
	}

	return out
}

// AsError extracts the provider error from err, if any.
func AsError(err error) (*Error, bool) {
	var providerErr *Error
	ok := errors.As(err, &providerErr)
	return providerErr, ok
}
