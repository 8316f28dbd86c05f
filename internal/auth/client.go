package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client implements Service over HTTP.
type Client struct {
	baseURL         string
	credentialsPath string
	httpClient      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client for the service at baseURL that keeps its session
// token in credentialsPath.
func New(baseURL, credentialsPath string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		credentialsPath: credentialsPath,
		httpClient:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges creds for a session token and stores it.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	body, err := json.Marshal(creds)
	if err != nil {
		return &Error{Op: "login", Err: err}
	}

	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", "", body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return &Error{Op: "login", Err: fmt.Errorf("response carried no token")}
	}

	return saveSession(c.credentialsPath, &session{
		Token:    resp.Token,
		Username: creds.Username,
		Server:   c.baseURL,
		SavedAt:  time.Now().UTC(),
	})
}

// Logout ends the session on the server and forgets the local token. The
// local token is removed even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	s, err := loadSession(c.credentialsPath)
	if err != nil {
		return err
	}

	callErr := c.do(ctx, "logout", http.MethodPost, "/logout", s.Token, nil, nil)
	if err := removeSession(c.credentialsPath); err != nil {
		return err
	}
	if callErr != nil && !errors.Is(callErr, ErrUnauthenticated) {
		return callErr
	}
	return nil
}

// Whoami returns the profile of the logged-in user.
func (c *Client) Whoami(ctx context.Context) (*Profile, error) {
	s, err := loadSession(c.credentialsPath)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := c.do(ctx, "whoami", http.MethodGet, "/whoami", s.Token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body []byte, out any) error {
	if c.baseURL == "" {
		return &Error{Op: op, Err: ErrNotConfigured}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Op: op, Status: resp.StatusCode, Err: ErrUnauthenticated}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
