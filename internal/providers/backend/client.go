package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
)

// Config controls how the client reaches the analytics backend.
type Config struct {
	BaseURL    string
	APIToken   string
	HTTPClient *http.Client
}

// Client fetches the team roster from the analytics backend.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiToken:   cfg.APIToken,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchRoster retrieves the raw pitcher, batter and combined name lists.
func (c *Client) FetchRoster(ctx context.Context) (roster.Roster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+rosterPath, nil)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("backend: fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return roster.Roster{}, c.statusError(resp)
	}

	var payload rosterResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRosterBody)).Decode(&payload); err != nil {
		return roster.Roster{}, fmt.Errorf("backend: decode roster: %w", err)
	}
	return roster.Roster{
		Pitchers:   nonNil(payload.Pitchers),
		Batters:    nonNil(payload.Batters),
		AllPlayers: nonNil(payload.AllPlayers),
	}, nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var envelope errorResponse
	detail := ""
	if json.Unmarshal(body, &envelope) == nil {
		detail = envelope.message()
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		msg := detail
		if msg == "" {
			msg = "backend rate limited"
		}
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    msg,
		}
	}
	return &providers.UpstreamError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
