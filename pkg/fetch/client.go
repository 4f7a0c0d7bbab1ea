// Package fetch is the engine's external collaborator for materializing
// []rate.Rate snapshots: an HTTP polling client and a websocket
// streaming variant. Neither is part of the core graph's contract; both
// exist only to hand the core ready-made rate.Rate values.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonasrmichel/ratearb/pkg/rate"
)

// Client polls a venue's REST API for the instrument universe and
// current quotes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client against baseURL, with a 30s request
// timeout matching the reference fleet's API clients.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchInstruments fetches the current list of tradeable instrument
// names (in "A_B" form).
func (c *Client) FetchInstruments(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/instruments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// wireRate is the venue's quote JSON shape.
type wireRate struct {
	Instrument string  `json:"instrument"`
	Bid        float64 `json:"bid"`
	Ask        float64 `json:"ask"`
}

// FetchRates fetches current bid/ask quotes for instruments.
func (c *Client) FetchRates(ctx context.Context, instruments []string) ([]rate.Rate, error) {
	path := "/rates"
	if len(instruments) > 0 {
		path += "?instruments=" + strings.Join(instruments, ",")
	}

	var wire []wireRate
	if err := c.getJSON(ctx, path, &wire); err != nil {
		return nil, err
	}

	out := make([]rate.Rate, len(wire))
	for i, w := range wire {
		out[i] = rate.Rate{Instrument: w.Instrument, Bid: w.Bid, Ask: w.Ask}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("fetch: build request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %s: %w: %v", path, ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fetch: %s returned status %d: %s: %w", path, resp.StatusCode, string(body), ErrFetchFailed)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("fetch: decode %s: %w", path, err)
	}
	return nil
}
