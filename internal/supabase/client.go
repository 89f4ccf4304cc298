// Package supabase provides a minimal read-only client for the hosted
// PostgREST endpoint that serves the precomputed popularity tables.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Row is one raw row from the popularity table. The payload columns arrive
// as JSON-encoded strings and are decoded by the normalizer, not here.
type Row struct {
	StockTicker string `json:"stock_ticker"`
	Data        string `json:"data"`
	DailyScore  string `json:"daily_score,omitempty"`
	StockPrice  string `json:"stock_price,omitempty"`
	MarketCap   string `json:"market_cap,omitempty"`
}

// apiError is the PostgREST error object.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Client issues read-only queries against one Supabase project. Construct
// it once at startup and pass it to whatever needs it.
type Client struct {
	baseURL    string
	key        string
	table      string
	httpClient *http.Client
}

// NewClient creates a client for the given project URL, anon key, and table.
func NewClient(baseURL, key, table string) *Client {
	return &Client{
		baseURL:    baseURL,
		key:        key,
		table:      table,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Select fetches the given columns for every row of the table.
func (c *Client) Select(ctx context.Context, columns string) ([]Row, error) {
	return c.query(ctx, columns, "")
}

// SelectTicker fetches the given columns for rows whose identifier equals
// ticker. Used by the single-ticker graph view.
func (c *Client) SelectTicker(ctx context.Context, columns, ticker string) ([]Row, error) {
	return c.query(ctx, columns, ticker)
}

func (c *Client) query(ctx context.Context, columns, ticker string) ([]Row, error) {
	q := url.Values{}
	q.Set("select", columns)
	if ticker != "" {
		q.Set("stock_ticker", "eq."+ticker)
	}
	u := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, url.PathEscape(c.table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", c.table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("supabase: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("supabase: status %d", resp.StatusCode)
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	return rows, nil
}
