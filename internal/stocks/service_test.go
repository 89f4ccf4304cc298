package stocks

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"aveenis/internal/cache"
	"aveenis/internal/supabase"
)

// fakeQuerier serves canned rows and counts calls.
type fakeQuerier struct {
	rows    []supabase.Row
	err     error
	selects int
	byTick  int
}

func (f *fakeQuerier) Select(_ context.Context, _ string) ([]supabase.Row, error) {
	f.selects++
	return f.rows, f.err
}

func (f *fakeQuerier) SelectTicker(_ context.Context, _, ticker string) ([]supabase.Row, error) {
	f.byTick++
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

func TestLoadFetchesOnceThenHitsCache(t *testing.T) {
	q := &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "AV1", Data: `{"data_today":[1,2,3]}`},
		{StockTicker: "AV2", Data: `{"data_today":[]}`},
	}}
	svc := NewService(q, cache.New(), DefaultColumns, discard())

	first, fromCache, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("first Load returned error: %v", err)
	}
	if fromCache {
		t.Error("first Load fromCache = true, want false")
	}
	if len(first) != 2 {
		t.Fatalf("got %d records, want 2", len(first))
	}

	second, fromCache, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if !fromCache {
		t.Error("second Load fromCache = false, want true")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache round-trip mismatch: %v vs %v", first, second)
	}
	if q.selects != 1 {
		t.Errorf("remote Select called %d times, want 1", q.selects)
	}
}

func TestLoadFetchError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection refused")}
	svc := NewService(q, cache.New(), DefaultColumns, discard())

	records, fromCache, err := svc.Load(context.Background())
	if err == nil {
		t.Fatal("Load should propagate the fetch error")
	}
	if records != nil || fromCache {
		t.Errorf("Load on error = (%v, %v), want (nil, false)", records, fromCache)
	}
	// A failed fetch must not write a cache entry.
	if q.selects != 1 {
		t.Fatalf("Select called %d times, want 1", q.selects)
	}
	if _, _, err := svc.Load(context.Background()); err == nil {
		t.Fatal("second Load should fetch again and fail again")
	}
	if q.selects != 2 {
		t.Errorf("Select called %d times after two failed loads, want 2", q.selects)
	}
}

func TestLoadTicker(t *testing.T) {
	q := &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "GME", Data: `{"data_today":[5,6]}`},
	}}
	svc := NewService(q, cache.New(), DefaultColumns, discard())

	rec, err := svc.LoadTicker(context.Background(), "GME")
	if err != nil {
		t.Fatalf("LoadTicker returned error: %v", err)
	}
	if rec == nil || rec.Ticker != "GME" || rec.Score != 6 {
		t.Errorf("rec = %+v, want GME with score 6", rec)
	}

	missing, err := svc.LoadTicker(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("LoadTicker(NOPE) returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("LoadTicker(NOPE) = %+v, want nil", missing)
	}
}

func TestLoadTickerBypassesCache(t *testing.T) {
	q := &fakeQuerier{rows: []supabase.Row{
		{StockTicker: "GME", Data: `{"data_today":[5]}`},
	}}
	svc := NewService(q, cache.New(), DefaultColumns, discard())

	if _, _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, err := svc.LoadTicker(context.Background(), "GME"); err != nil {
		t.Fatalf("LoadTicker returned error: %v", err)
	}
	if q.byTick != 1 {
		t.Errorf("SelectTicker called %d times, want 1 (no cache interception)", q.byTick)
	}
}
