package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	// abbreviatedMetadata asks the registry for the slim packument.
	abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"
)

// Resolver finds the version of a package to use. An empty current means
// "the greatest published version"; otherwise only versions newer than current
// are considered and current is returned when nothing newer exists.
type Resolver interface {
	ResolveLatest(ctx context.Context, name, current string) (string, error)
}

// Client queries an npm-compatible registry over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for the registry at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "devlink-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// packument is the subset of registry package metadata we read.
type packument struct {
	Name     string                     `json:"name"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
}

// ResolveLatest implements Resolver.
func (c *Client) ResolveLatest(ctx context.Context, name, current string) (string, error) {
	doc, err := c.fetch(ctx, name)
	if err != nil {
		return "", err
	}

	versions := make([]string, 0, len(doc.Versions))
	for v := range doc.Versions {
		versions = append(versions, v)
	}

	if current == "" {
		v, err := SelectLatest(versions, doc.DistTags["latest"])
		if err != nil {
			return "", &Error{Package: name, Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
		}
		return v, nil
	}

	v, err := SelectNewer(versions, current)
	if err != nil {
		return "", &Error{Package: name, Err: err}
	}
	return v, nil
}

// PackageURL returns the metadata URL for name. Scoped names have their slash
// escaped ("@scope%2Fname"), which is what the npm registry expects.
func (c *Client) PackageURL(name string) string {
	return c.baseURL + "/" + url.PathEscape(name)
}

func (c *Client) fetch(ctx context.Context, name string) (*packument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PackageURL(name), nil)
	if err != nil {
		return nil, &Error{Package: name, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", abbreviatedMetadata)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Package: name, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &Error{Package: name, Err: ErrPackageNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Package: name, Err: fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Package: name, Err: fmt.Errorf("%w: reading body: %v", ErrUnreachable, err)}
	}

	var doc packument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &Error{Package: name, Err: fmt.Errorf("%w: parsing metadata: %v", ErrBadResponse, err)}
	}
	if len(doc.Versions) == 0 {
		return nil, &Error{Package: name, Err: ErrPackageNotFound}
	}
	return &doc, nil
}
