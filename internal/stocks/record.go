// Package stocks holds the normalized ticker records and the
// fetch-cache-normalize pipeline that produces them.
package stocks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"aveenis/internal/supabase"
)

// TickerRecord is one normalized row of the popularity table.
type TickerRecord struct {
	Ticker    string    `json:"ticker"`
	Series    []float64 `json:"series"`
	History   []float64 `json:"history,omitempty"`
	Score     float64   `json:"score"`
	Price     float64   `json:"price,omitempty"`
	MarketCap float64   `json:"marketCap,omitempty"`
}

// payload is the decoded shape of the JSON-encoded "data" column.
type payload struct {
	DataToday   flexSeries `json:"data_today"`
	DataHistory flexSeries `json:"data_history"`
}

// flexSeries decodes a JSON array whose elements may be numbers, numeric
// strings, or null. Strings are coerced to numbers; null becomes 0.
type flexSeries []float64

func (f *flexSeries) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		switch x := v.(type) {
		case float64:
			out = append(out, x)
		case string:
			n, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return fmt.Errorf("non-numeric element %q", x)
			}
			out = append(out, n)
		case nil:
			out = append(out, 0)
		default:
			return fmt.Errorf("unsupported element type %T", v)
		}
	}
	*f = out
	return nil
}

// lastOr returns the last element of s, or fallback when s is empty.
func lastOr(s []float64, fallback float64) float64 {
	if len(s) == 0 {
		return fallback
	}
	return s[len(s)-1]
}

// Normalize maps one raw backend row to a TickerRecord. The score is always
// derived from the series (last element, 0 when empty) so the two cannot
// drift. Rows with an empty identifier or a malformed payload are rejected.
func Normalize(row supabase.Row) (TickerRecord, error) {
	if row.StockTicker == "" {
		return TickerRecord{}, fmt.Errorf("row has empty ticker")
	}

	rec := TickerRecord{Ticker: row.StockTicker, Series: []float64{}}

	if row.Data != "" {
		var p payload
		if err := json.Unmarshal([]byte(row.Data), &p); err != nil {
			return TickerRecord{}, fmt.Errorf("ticker %s: parsing data payload: %w", row.StockTicker, err)
		}
		if p.DataToday != nil {
			rec.Series = p.DataToday
		}
		rec.History = p.DataHistory
	} else if row.DailyScore != "" {
		// Later table variant: the series is its own column.
		var s flexSeries
		if err := json.Unmarshal([]byte(row.DailyScore), &s); err != nil {
			return TickerRecord{}, fmt.Errorf("ticker %s: parsing daily_score: %w", row.StockTicker, err)
		}
		rec.Series = s
	}

	if row.StockPrice != "" {
		var s flexSeries
		if err := json.Unmarshal([]byte(row.StockPrice), &s); err != nil {
			return TickerRecord{}, fmt.Errorf("ticker %s: parsing stock_price: %w", row.StockTicker, err)
		}
		rec.Price = lastOr(s, 0)
	}
	if row.MarketCap != "" {
		var s flexSeries
		if err := json.Unmarshal([]byte(row.MarketCap), &s); err != nil {
			return TickerRecord{}, fmt.Errorf("ticker %s: parsing market_cap: %w", row.StockTicker, err)
		}
		rec.MarketCap = lastOr(s, 0)
	}

	rec.Score = lastOr(rec.Series, 0)
	return rec, nil
}

// NormalizeRows converts a batch of raw rows, skipping malformed ones with
// a warning. The source frontends were inconsistent here; skipping is the
// one policy applied everywhere in this codebase.
func NormalizeRows(rows []supabase.Row, log *slog.Logger) []TickerRecord {
	records := make([]TickerRecord, 0, len(rows))
	for i := range rows {
		rec, err := Normalize(rows[i])
		if err != nil {
			log.Warn("skipping malformed row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}
