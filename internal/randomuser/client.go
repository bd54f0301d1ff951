// Package randomuser клиент внешнего API randomuser.me.
package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoResults внешний API ответил пустым списком.
var ErrNoResults = errors.New("random user api returned no results")

// Client ходит в API случайных пользователей.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент с таймаутом timeout.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type resultsEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

// Random возвращает первого пользователя из ответа как есть.
func (c *Client) Random(ctx context.Context) (json.RawMessage, error) {
	const op = "randomuser.Random"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var env resultsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(env.Results) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoResults)
	}
	return env.Results[0], nil
}
