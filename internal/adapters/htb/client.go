// Package htb fetches the HackTheBox public CTF listing.
package htb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ctfwatch/internal/domain"
)

// DefaultBaseURL is the public, unauthenticated CTF listing endpoint.
const DefaultBaseURL = "https://ctf.hackthebox.com/api/public/ctfs"

type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	apiToken  string
}

// NewClient returns an EventFeed backed by the HackTheBox public API.
// apiToken is optional; when set it is attached as a bearer token and, since
// HTB tokens are JWTs, inspected (unverified) to warn about expiry up front.
func NewClient(httpClient *http.Client, baseURL, userAgent, apiToken string, logger *slog.Logger) domain.EventFeed {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiToken != "" {
		warnIfTokenStale(apiToken, logger)
	}
	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		userAgent: userAgent,
		apiToken:  apiToken,
	}
}

func (c *Client) List(ctx context.Context) ([]domain.EventSummary, error) {
	var dtos []eventDTO
	if err := c.getJSON(ctx, "list", c.baseURL, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.EventSummary, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.EventSummary{ID: d.ID.String(), Slug: d.Slug})
	}
	return out, nil
}

func (c *Client) Detail(ctx context.Context, slug string) (*domain.EventDetail, error) {
	var dto eventDTO
	detailURL := c.baseURL + "/details/" + url.PathEscape(slug)
	if err := c.getJSON(ctx, "detail", detailURL, &dto); err != nil {
		return nil, err
	}
	detail := dto.toDetail()
	if detail.Slug == "" {
		detail.Slug = slug
	}
	return detail, nil
}

func (c *Client) getJSON(ctx context.Context, op, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &domain.FetchError{Op: op, URL: rawURL, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.FetchError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.FetchError{Op: op, URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.FetchError{Op: op, URL: rawURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// timeLayouts are the formats the API has been observed to use for
// starts_at/ends_at. An unparsable timestamp maps to the zero time, which
// keeps the event alertable but never reminder-eligible.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseEventTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
