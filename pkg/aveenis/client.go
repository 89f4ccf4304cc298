// Package aveenis provides a Go client for the aveenis-server API.
package aveenis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Row is one table row as served by the API.
type Row struct {
	Ticker    string  `json:"ticker"`
	Score     float64 `json:"score"`
	Price     float64 `json:"price,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`
}

// Table is the response of the table endpoint.
type Table struct {
	Rows      []Row  `json:"rows"`
	FromCache bool   `json:"fromCache"`
	Filter    string `json:"filter,omitempty"`
	SortKey   string `json:"sortKey,omitempty"`
	SortDir   string `json:"sortDir,omitempty"`
}

// Point is one labeled sample of a ticker's timeseries.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Graph is the response of the per-ticker endpoint. An empty Points slice
// with a non-empty Message is the no-data state.
type Graph struct {
	Ticker  string    `json:"ticker"`
	Points  []Point   `json:"points"`
	History []float64 `json:"history,omitempty"`
	Message string    `json:"message,omitempty"`
}

// TableQuery holds the optional query parameters of the table endpoint.
type TableQuery struct {
	Filter  string
	SortKey string
	Desc    bool
}

// Client talks to one aveenis-server instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Stocks retrieves the popularity table, filtered and sorted server-side.
func (c *Client) Stocks(ctx context.Context, q TableQuery) (*Table, error) {
	params := url.Values{}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.SortKey != "" {
		params.Set("sort", q.SortKey)
		if q.Desc {
			params.Set("dir", "desc")
		}
	}
	u := c.baseURL + "/api/stocks"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var table Table
	if err := c.get(ctx, u, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// Graph retrieves the timeseries for one ticker.
func (c *Client) Graph(ctx context.Context, ticker string) (*Graph, error) {
	var graph Graph
	u := c.baseURL + "/graph/" + url.PathEscape(ticker)
	if err := c.get(ctx, u, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("aveenis: %s", apiErr.Error)
		}
		return fmt.Errorf("aveenis: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
