package prefs

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestThemeDefaultsToLight(t *testing.T) {
	s := openTestStore(t)
	theme, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme returned error: %v", err)
	}
	if theme != ThemeLight {
		t.Errorf("Theme = %q, want %q", theme, ThemeLight)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.SetTheme(ThemeDark); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	theme, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme returned error: %v", err)
	}
	if theme != ThemeDark {
		t.Errorf("Theme = %q, want %q", theme, ThemeDark)
	}
}

func TestThemeIgnoresGarbageValue(t *testing.T) {
	s := openTestStore(t)
	if err := s.set("theme", "neon"); err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	theme, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme returned error: %v", err)
	}
	if theme != ThemeLight {
		t.Errorf("Theme = %q, want fallback %q", theme, ThemeLight)
	}
}

func TestVisitedWindow(t *testing.T) {
	s := openTestStore(t)

	visited, err := s.Visited()
	if err != nil {
		t.Fatalf("Visited returned error: %v", err)
	}
	if visited {
		t.Error("Visited on fresh store = true, want false")
	}

	if err := s.MarkVisited(); err != nil {
		t.Fatalf("MarkVisited returned error: %v", err)
	}
	visited, err = s.Visited()
	if err != nil {
		t.Fatalf("Visited returned error: %v", err)
	}
	if !visited {
		t.Error("Visited after MarkVisited = false, want true")
	}

	// Fast-forward past the 7-day window.
	s.now = func() time.Time { return time.Now().Add(VisitedWindow + time.Hour) }
	visited, err = s.Visited()
	if err != nil {
		t.Fatalf("Visited returned error: %v", err)
	}
	if visited {
		t.Error("Visited after window expiry = true, want false")
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open with nested path returned error: %v", err)
	}
	s.Close()
}
