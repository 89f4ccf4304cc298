package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"aveenis/internal/cache"
	"aveenis/internal/supabase"
)

// CacheKey is the fixed session-cache key for the full normalized row set.
const CacheKey = "supabaseData"

// DefaultColumns is the column list for the full-table query.
// ExtendedColumns additionally pulls the price and market cap series.
const (
	DefaultColumns  = "stock_ticker,data"
	ExtendedColumns = "stock_ticker,data,daily_score,stock_price,market_cap"
)

// Querier is the read-only slice of the supabase client the service needs.
type Querier interface {
	Select(ctx context.Context, columns string) ([]supabase.Row, error)
	SelectTicker(ctx context.Context, columns, ticker string) ([]supabase.Row, error)
}

// Service runs the fetch → normalize → cache pipeline shared by the TUI
// and the HTTP server.
type Service struct {
	client  Querier
	session *cache.Session
	columns string
	log     *slog.Logger
}

// NewService creates a Service. columns selects the table variant; pass
// DefaultColumns for the two-column (identifier + payload) shape.
func NewService(client Querier, session *cache.Session, columns string, log *slog.Logger) *Service {
	if columns == "" {
		columns = DefaultColumns
	}
	return &Service{client: client, session: session, columns: columns, log: log}
}

// Load returns the normalized record set. The session cache is consulted
// first; a hit short-circuits the remote fetch entirely. On a miss the
// rows are fetched, normalized, and written back exactly once. fromCache
// reports which path was taken.
func (s *Service) Load(ctx context.Context) (records []TickerRecord, fromCache bool, err error) {
	if data, ok := s.session.Get(CacheKey); ok {
		if err := json.Unmarshal(data, &records); err == nil {
			return records, true, nil
		}
		// Undecodable snapshot: fall through to a fresh fetch.
		s.log.Warn("discarding undecodable cache entry", "key", CacheKey)
	}

	rows, err := s.client.Select(ctx, s.columns)
	if err != nil {
		return nil, false, fmt.Errorf("fetching stock data: %w", err)
	}

	records = NormalizeRows(rows, s.log)

	data, err := json.Marshal(records)
	if err != nil {
		return nil, false, fmt.Errorf("encoding cache snapshot: %w", err)
	}
	s.session.Set(CacheKey, data)

	s.log.Info("stock data fetched", "rows", len(rows), "records", len(records))
	return records, false, nil
}

// LoadTicker fetches and normalizes a single ticker via a filtered query.
// It bypasses the session cache; the graph view always shows fresh data.
// A missing ticker returns (nil, nil): the caller renders its no-data state.
func (s *Service) LoadTicker(ctx context.Context, ticker string) (*TickerRecord, error) {
	rows, err := s.client.SelectTicker(ctx, s.columns, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ticker, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec, err := Normalize(rows[0])
	if err != nil {
		s.log.Warn("skipping malformed row", "error", err)
		return nil, nil
	}
	return &rec, nil
}
