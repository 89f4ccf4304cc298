// Command aveenis is the terminal dashboard: a sortable, filterable
// popularity table with a per-ticker timeseries graph.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"aveenis/internal/cache"
	"aveenis/internal/config"
	"aveenis/internal/prefs"
	"aveenis/internal/series"
	"aveenis/internal/stocks"
	"aveenis/internal/supabase"
	"aveenis/internal/util"
	"aveenis/internal/view"
)

const (
	toastDuration = 3 * time.Second
	fetchTimeout  = 30 * time.Second

	welcomeToast  = "Welcome! Press 1-9 to sort a column, / to filter."
	cacheToast    = "Pulled from session storage!"
	fetchErrToast = "Error pulling stock data."
)

// Screens.
const (
	screenTable = iota
	screenGraph
)

// Messages.
type dataLoadedMsg struct {
	records   []stocks.TickerRecord
	fromCache bool
	err       error
}

type graphLoadedMsg struct {
	ticker string
	points []series.Point
	err    error
}

type toastExpiredMsg struct{ seq int }

type model struct {
	svc   *stocks.Service
	store *prefs.Store
	th    *theme

	table    *view.Table
	selected int

	screen      int
	graphTicker string
	graphPoints []series.Point
	graphWait   bool

	filterInput textinput.Model
	filtering   bool

	vp      viewport.Model
	ready   bool
	width   int
	height  int
	loading bool

	toast    string
	toastErr bool
	toastSeq int
}

func newModel(svc *stocks.Service, store *prefs.Store, th *theme, columns []view.Column, startupToast string) model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 32
	ti.Width = 24

	m := model{
		svc:         svc,
		store:       store,
		th:          th,
		table:       view.NewTable(columns),
		filterInput: ti,
		loading:     true,
	}
	if startupToast != "" {
		m.toast = startupToast
		m.toastSeq = 1
	}
	return m
}

func (m model) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, fromCache, err := svc.Load(ctx)
		return dataLoadedMsg{records: records, fromCache: fromCache, err: err}
	}
}

func (m model) loadGraphCmd(ticker string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rec, err := svc.LoadTicker(ctx, ticker)
		msg := graphLoadedMsg{ticker: ticker, err: err}
		if rec != nil {
			msg.points = series.Transform(rec.Series)
		}
		return msg
	}
}

// showToast sets the transient status line and schedules its expiry. The
// sequence number keeps a stale timer from clearing a newer toast.
func (m *model) showToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastErr = isErr
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.toast != "" {
		seq := m.toastSeq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - 4 // header, column header, footer, toast line
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = bodyHeight
		}
		m.syncViewport()
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.table.SetRecords(nil)
			m.syncViewport()
			return m, m.showToast(fetchErrToast, true)
		}
		m.table.SetRecords(msg.records)
		m.clampSelection()
		m.syncViewport()
		if msg.fromCache {
			return m, m.showToast(cacheToast, false)
		}
		return m, nil

	case graphLoadedMsg:
		if msg.ticker != m.graphTicker {
			return m, nil // stale answer for a screen we already left
		}
		m.graphWait = false
		if msg.err != nil {
			m.graphPoints = nil
			m.syncViewport()
			return m, m.showToast(fetchErrToast, true)
		}
		m.graphPoints = msg.points
		m.syncViewport()
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if msg.String() == "esc" {
				m.filterInput.SetValue("")
				m.table.SetFilter("")
			}
			m.clampSelection()
			m.syncViewport()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.table.SetFilter(m.filterInput.Value())
			m.clampSelection()
			m.syncViewport()
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace":
		if m.screen == screenGraph {
			m.screen = screenTable
			m.graphTicker = ""
			m.graphPoints = nil
			m.syncViewport()
		}
		return m, nil

	case "up", "k":
		if m.screen == screenTable && m.selected > 0 {
			m.selected--
			m.syncViewport()
		}
		return m, nil

	case "down", "j":
		if m.screen == screenTable {
			if rows := m.table.VisibleRows(); m.selected < len(rows)-1 {
				m.selected++
				m.syncViewport()
			}
		}
		return m, nil

	case "enter":
		if m.screen != screenTable {
			return m, nil
		}
		rows := m.table.VisibleRows()
		if m.selected >= len(rows) {
			return m, nil
		}
		m.screen = screenGraph
		m.graphTicker = rows[m.selected].Ticker
		m.graphPoints = nil
		m.graphWait = true
		m.syncViewport()
		return m, m.loadGraphCmd(m.graphTicker)

	case "/":
		if m.screen == screenTable {
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "r":
		m.loading = true
		m.syncViewport()
		return m, m.loadCmd()

	case "t":
		if m.th.name == prefs.ThemeDark {
			m.th = lightTheme()
		} else {
			m.th = darkTheme()
		}
		if err := m.store.SetTheme(m.th.name); err != nil {
			return m, m.showToast("Could not save theme.", true)
		}
		m.syncViewport()
		return m, nil
	}

	// Digit keys toggle the sort on the matching column.
	if m.screen == screenTable && len(msg.String()) == 1 {
		if n := int(msg.String()[0] - '1'); n >= 0 && n < len(m.table.Columns()) {
			m.table.ToggleSort(m.table.Columns()[n].Key)
			m.clampSelection()
			m.syncViewport()
		}
	}
	return m, nil
}

// clampSelection keeps the cursor inside the visible row range after the
// row set shrinks (filter edit, refresh).
func (m *model) clampSelection() {
	n := len(m.table.VisibleRows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) syncViewport() {
	if !m.ready {
		return
	}
	if m.screen == screenGraph {
		m.vp.SetContent(m.renderGraph())
	} else {
		m.vp.SetContent(m.renderRows())
	}
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}
	switch m.screen {
	case screenGraph:
		return m.viewGraph()
	default:
		return m.viewTable()
	}
}

func main() {
	cfgPath := flag.String("config", "config/aveenis.yaml", "path to config file")
	extended := flag.Bool("extended", false, "show price and market cap columns")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Supabase.URL == "" || cfg.Supabase.Key == "" {
		fmt.Fprintln(os.Stderr, "SUPABASE_URL and SUPABASE_KEY must be set")
		os.Exit(1)
	}

	// The terminal owns stdout, so the TUI logs to a dated file.
	logFile, err := os.OpenFile(
		filepath.Join(os.TempDir(), fmt.Sprintf("aveenis-%s.log", time.Now().Format("2006-01-02"))),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := util.NewLogger(logFile, cfg.Logging.Level, "text")
	util.SetDefault(log)

	store, err := prefs.Open(cfg.Storage.PrefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening prefs store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	themeName, err := store.Theme()
	if err != nil {
		log.Warn("reading theme", "error", err)
		themeName = prefs.ThemeLight
	}

	// First visit in a week gets the onboarding toast.
	startupToast := ""
	visited, err := store.Visited()
	if err != nil {
		log.Warn("reading visited flag", "error", err)
	}
	if !visited {
		startupToast = welcomeToast
	}
	if err := store.MarkVisited(); err != nil {
		log.Warn("marking visited", "error", err)
	}

	client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Table)
	columns := stocks.DefaultColumns
	tableCols := view.DefaultColumns()
	if *extended {
		columns = stocks.ExtendedColumns
		tableCols = view.ExtendedColumns()
	}
	svc := stocks.NewService(client, cache.New(), columns, log)

	m := newModel(svc, store, themeByName(themeName), tableCols, startupToast)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running program: %v\n", err)
		os.Exit(1)
	}
}
