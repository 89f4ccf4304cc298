// Package httpapi serves the popularity table and per-ticker series over
// HTTP, mirroring what the terminal client renders.
package httpapi

import (
	"aveenis/internal/series"
	"aveenis/internal/stocks"
)

// RowJSON is one table row as served to clients.
type RowJSON struct {
	Ticker    string  `json:"ticker"`
	Score     float64 `json:"score"`
	Price     float64 `json:"price,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`
}

// TableResponse is the response for the table endpoint. Rows are already
// filtered and ordered server-side by the same view-model the TUI uses.
type TableResponse struct {
	Rows      []RowJSON `json:"rows"`
	FromCache bool      `json:"fromCache"`
	Filter    string    `json:"filter,omitempty"`
	SortKey   string    `json:"sortKey,omitempty"`
	SortDir   string    `json:"sortDir,omitempty"`
}

// GraphResponse is the per-ticker detail payload. Points is empty (never
// null) when the ticker has no samples; Message carries the no-data text
// in that case.
type GraphResponse struct {
	Ticker  string         `json:"ticker"`
	Points  []series.Point `json:"points"`
	History []float64      `json:"history,omitempty"`
	Message string         `json:"message,omitempty"`
}

// convertRows maps ordered records to their JSON rows.
func convertRows(records []stocks.TickerRecord) []RowJSON {
	rows := make([]RowJSON, 0, len(records))
	for i := range records {
		rows = append(rows, RowJSON{
			Ticker:    records[i].Ticker,
			Score:     records[i].Score,
			Price:     records[i].Price,
			MarketCap: records[i].MarketCap,
		})
	}
	return rows
}
