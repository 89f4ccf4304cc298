package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"aveenis/internal/cache"
	"aveenis/internal/stocks"
	"aveenis/internal/supabase"
	"aveenis/internal/view"
)

type fakeQuerier struct {
	rows []supabase.Row
	err  error
}

func (f *fakeQuerier) Select(_ context.Context, _ string) ([]supabase.Row, error) {
	return f.rows, f.err
}

func (f *fakeQuerier) SelectTicker(_ context.Context, _, ticker string) ([]supabase.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.StockTicker == ticker {
			return []supabase.Row{r}, nil
		}
	}
	return nil, nil
}

func newTestServer(t *testing.T, q *fakeQuerier) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := stocks.NewService(q, cache.New(), stocks.DefaultColumns, log)
	srv := httptest.NewServer(NewServer(svc, view.DefaultColumns(), log).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestStocksEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "AV1", Data: `{"data_today":[1,2,3]}`},
		{StockTicker: "AV2", Data: `{"data_today":[]}`},
	}})

	var resp TableResponse
	if code := get(t, srv.URL+"/api/stocks?sort=score&dir=desc", &resp); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(resp.Rows))
	}
	// Score descending: AV1 (3) above AV2 (0).
	if resp.Rows[0].Ticker != "AV1" || resp.Rows[1].Ticker != "AV2" {
		t.Errorf("rows = %v, want AV1 then AV2", resp.Rows)
	}
	if resp.Rows[0].Score != 3 || resp.Rows[1].Score != 0 {
		t.Errorf("scores = %v/%v, want 3/0", resp.Rows[0].Score, resp.Rows[1].Score)
	}
	if resp.SortKey != "score" || resp.SortDir != "desc" {
		t.Errorf("sort = (%q, %q), want (score, desc)", resp.SortKey, resp.SortDir)
	}
	if resp.FromCache {
		t.Error("first request fromCache = true, want false")
	}

	// Second request is served from the session cache.
	if code := get(t, srv.URL+"/api/stocks", &resp); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if !resp.FromCache {
		t.Error("second request fromCache = false, want true")
	}
}

func TestStocksFilter(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "GME", Data: `{"data_today":[5]}`},
		{StockTicker: "AMC", Data: `{"data_today":[9]}`},
	}})

	var resp TableResponse
	get(t, srv.URL+"/api/stocks?filter=gm", &resp)
	if len(resp.Rows) != 1 || resp.Rows[0].Ticker != "GME" {
		t.Errorf("filtered rows = %v, want [GME]", resp.Rows)
	}
}

func TestStocksUnknownSortIgnored(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "GME", Data: `{"data_today":[5]}`},
	}})

	var resp TableResponse
	if code := get(t, srv.URL+"/api/stocks?sort=volume", &resp); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp.SortKey != "" || resp.SortDir != "" {
		t.Errorf("sort = (%q, %q), want unsorted", resp.SortKey, resp.SortDir)
	}
}

func TestStocksFetchFailure(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{err: errors.New("connection refused")})

	var body map[string]string
	if code := get(t, srv.URL+"/api/stocks", &body); code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", code)
	}
	if body["error"] == "" {
		t.Error("error body missing message")
	}
}

func TestGraphEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "GME", Data: `{"data_today":[10,-5,0],"data_history":[1,2]}`},
	}})

	var resp GraphResponse
	if code := get(t, srv.URL+"/graph/GME", &resp); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(resp.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(resp.Points))
	}
	if resp.Points[0].Label != "-3hrs" || resp.Points[0].Value != 10 {
		t.Errorf("first point = %+v, want -3hrs/10", resp.Points[0])
	}
	if len(resp.History) != 2 {
		t.Errorf("history = %v, want [1 2]", resp.History)
	}
	if resp.Message != "" {
		t.Errorf("message = %q, want empty", resp.Message)
	}
}

func TestGraphNoData(t *testing.T) {
	srv := newTestServer(t, &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "EMPTY", Data: `{"data_today":[]}`},
	}})

	var resp GraphResponse
	if code := get(t, srv.URL+"/graph/MISSING", &resp); code != http.StatusOK {
		t.Fatalf("missing ticker status = %d, want 200 (no-data state)", code)
	}
	if len(resp.Points) != 0 || resp.Message == "" {
		t.Errorf("resp = %+v, want empty points with no-data message", resp)
	}

	get(t, srv.URL+"/graph/EMPTY", &resp)
	if len(resp.Points) != 0 || resp.Message == "" {
		t.Errorf("resp = %+v, want empty points with no-data message", resp)
	}
}
