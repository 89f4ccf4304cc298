package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aveenis/internal/chart"
	"aveenis/internal/series"
	"aveenis/internal/stocks"
	"aveenis/internal/view"
)

// Server serves the dashboard HTTP API.
type Server struct {
	svc     *stocks.Service
	columns []view.Column
	log     *slog.Logger
}

// NewServer creates a server over the shared load pipeline. columns
// selects the table variant served by the table endpoint.
func NewServer(svc *stocks.Service, columns []view.Column, log *slog.Logger) *Server {
	return &Server{svc: svc, columns: columns, log: log}
}

// Handler returns the routed handler with CORS middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Get("/api/stocks", s.handleStocks)
	r.Get("/api/stocks/{ticker}", s.handleGraph)
	r.Get("/graph/{ticker}", s.handleGraph)
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// handleStocks serves the filtered, sorted table. Query params: filter
// (free text), sort (column key), dir (asc|desc). An unknown sort key is
// ignored, matching the view-model contract.
func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	records, fromCache, err := s.svc.Load(r.Context())
	if err != nil {
		s.log.Error("loading stock data", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	tbl := view.NewTable(s.columns)
	tbl.SetRecords(records)
	tbl.SetFilter(r.URL.Query().Get("filter"))

	if key := r.URL.Query().Get("sort"); key != "" {
		tbl.ToggleSort(key)
		if r.URL.Query().Get("dir") == "desc" {
			tbl.ToggleSort(key)
		}
	}

	sortKey, sortDir := tbl.Sort()
	resp := TableResponse{
		Rows:      convertRows(tbl.VisibleRows()),
		FromCache: fromCache,
		Filter:    tbl.Filter(),
		SortKey:   sortKey,
	}
	switch sortDir {
	case view.SortAsc:
		resp.SortDir = "asc"
	case view.SortDesc:
		resp.SortDir = "desc"
	}
	writeJSON(w, resp)
}

// handleGraph serves the per-ticker detail view behind /graph/{ticker}.
// A missing ticker or empty series is the no-data state, not an error.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker required")
		return
	}

	rec, err := s.svc.LoadTicker(r.Context(), ticker)
	if err != nil {
		s.log.Error("loading ticker", "ticker", ticker, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := GraphResponse{Ticker: ticker, Points: []series.Point{}}
	if rec != nil {
		resp.Points = series.Transform(rec.Series)
		resp.History = rec.History
	}
	if len(resp.Points) == 0 {
		resp.Message = chart.NoData
	}
	writeJSON(w, resp)
}
