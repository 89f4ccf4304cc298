package view

import (
	"fmt"
	"strconv"
	"strings"

	"aveenis/internal/stocks"
)

// Column is one entry of the declarative table schema: display title,
// value accessor, comparison semantics, and formatter. Table variants are
// built by picking a column set, not by duplicating render code.
type Column struct {
	Key     string
	Title   string
	Numeric bool

	// Value is the numeric accessor; nil for non-numeric columns.
	Value func(r *stocks.TickerRecord) float64
	// Text is the formatted cell value, also used for filtering.
	Text func(r *stocks.TickerRecord) string
}

// less compares two records under this column: numerically for numeric
// columns, lexicographically otherwise.
func (c *Column) less(a, b *stocks.TickerRecord) bool {
	if c.Numeric && c.Value != nil {
		return c.Value(a) < c.Value(b)
	}
	return c.Text(a) < c.Text(b)
}

// DefaultColumns is the two-column schema of the classic popularity table.
func DefaultColumns() []Column {
	return []Column{
		TickerColumn(),
		ScoreColumn(),
	}
}

// ExtendedColumns is the later page variant with price and market cap.
func ExtendedColumns() []Column {
	return []Column{
		TickerColumn(),
		ScoreColumn(),
		{
			Key:     "price",
			Title:   "Price",
			Numeric: true,
			Value:   func(r *stocks.TickerRecord) float64 { return r.Price },
			Text:    func(r *stocks.TickerRecord) string { return FormatPrice(r.Price) },
		},
		{
			Key:     "marketCap",
			Title:   "Market Cap",
			Numeric: true,
			Value:   func(r *stocks.TickerRecord) float64 { return r.MarketCap },
			Text:    func(r *stocks.TickerRecord) string { return FormatMarketCap(r.MarketCap) },
		},
	}
}

// TickerColumn is the identifier column; it sorts lexicographically.
func TickerColumn() Column {
	return Column{
		Key:   "ticker",
		Title: "Ticker",
		Text:  func(r *stocks.TickerRecord) string { return strings.ToUpper(r.Ticker) },
	}
}

// ScoreColumn is the popularity score column.
func ScoreColumn() Column {
	return Column{
		Key:     "score",
		Title:   "Popularity",
		Numeric: true,
		Value:   func(r *stocks.TickerRecord) float64 { return r.Score },
		Text:    func(r *stocks.TickerRecord) string { return FormatScore(r.Score) },
	}
}

// FormatScore renders a popularity score without trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPrice formats a price as X.XX, or "-" for zero.
func FormatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}

// FormatMarketCap formats a dollar value with B/M/K suffixes.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	case v == 0:
		return "-"
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
