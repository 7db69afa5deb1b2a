package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotFound = errors.New("github profile not found")

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client lists a user's public repositories and hands the upstream JSON back
// untouched.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.github.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

func (c *Client) ListRepos(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotFound
	}

	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.cfg.ClientID != "" {
		query.Set("client_id", c.cfg.ClientID)
	}
	if c.cfg.ClientSecret != "" {
		query.Set("client_secret", c.cfg.ClientSecret)
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/users/" + url.PathEscape(username) + "/repos?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request failed: %w", err)
	}
	req.Header.Set("User-Agent", "devconnector")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("github response is not json")
	}
	return json.RawMessage(raw), nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
