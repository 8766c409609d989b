package trello

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

// Credentials identify a Trello account and the list cards go into
type Credentials struct {
	APIKey string
	Token  string
	ListID string
}

// Complete reports whether every credential is set
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.Token != "" && c.ListID != ""
}

// CardRequest is one card to create
type CardRequest struct {
	Name string
	Desc string
}

// Card is a created Trello card
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ShortURL string `json:"shortUrl"`
}

// Client creates Trello cards. Calls share one rate limiter so concurrent
// exports stay under Trello's per-token limits.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Trello client
func NewClient(cfg *config.TrelloConfig) *Client {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 8
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(limit), int(limit)+1),
	}
}

// CreateCard adds a card at the bottom of the credentials' list
func (c *Client) CreateCard(ctx context.Context, creds Credentials, card CardRequest) (*Card, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("key", creds.APIKey)
	query.Set("token", creds.Token)
	query.Set("idList", creds.ListID)
	query.Set("name", card.Name)
	query.Set("desc", card.Desc)
	query.Set("pos", "bottom")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/1/cards?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trello request failed: %w", redact(err, creds))
	}
	defer resp.Body.Close()

	if err := external.CheckResponse("trello", resp); err != nil {
		return nil, err
	}

	var created Card
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		// The card exists once Trello answered 2xx
		return nil, retry.Permanent(fmt.Errorf("failed to decode trello response: %w", err))
	}
	return &created, nil
}

// redactedError carries a scrubbed message and unwraps to the innermost
// cause, which never quotes the request URL.
type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }

// redact strips credentials from transport errors, which quote the URL
func redact(err error, creds Credentials) error {
	msg := err.Error()
	for _, secret := range []string{creds.APIKey, creds.Token} {
		if secret != "" {
			msg = strings.ReplaceAll(msg, url.QueryEscape(secret), "REDACTED")
			msg = strings.ReplaceAll(msg, secret, "REDACTED")
		}
	}

	var cause error
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(next) {
		cause = next
	}
	return &redactedError{msg: msg, cause: cause}
}
