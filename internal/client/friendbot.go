package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FriendbotClient is a client for a test-network faucet.
type FriendbotClient struct {
	baseURL string
	client  *http.Client
}

// NewFriendbotClient creates a faucet client. A nil httpClient gets a
// default with a bounded timeout.
func NewFriendbotClient(baseURL string, httpClient *http.Client) *FriendbotClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &FriendbotClient{baseURL: baseURL, client: httpClient}
}

// Fund asks the faucet to fund address with test currency.
func (c *FriendbotClient) Fund(ctx context.Context, address string) error {
	fundURL := fmt.Sprintf("%s?addr=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fundURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build funding request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("funding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Friendbot answers with a horizon problem body; a short excerpt
		// is enough for the status message.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("faucet returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
