package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the aveenis dashboard.
type Config struct {
	Supabase Supabase `yaml:"supabase"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
	Storage  Storage  `yaml:"storage"`
}

// Supabase holds the hosted data backend endpoint and credentials.
type Supabase struct {
	URL   string `yaml:"url" envconfig:"SUPABASE_URL"`
	Key   string `yaml:"key" envconfig:"SUPABASE_KEY"`
	Table string `yaml:"table" envconfig:"SUPABASE_TABLE"`
}

// Server holds network listener configuration for aveenis-server.
type Server struct {
	Host string `yaml:"host" envconfig:"AVEENIS_HOST"`
	Port int    `yaml:"port" envconfig:"AVEENIS_PORT"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Storage holds paths for local persistence (theme, visited flag).
type Storage struct {
	PrefsPath string `yaml:"prefs_path" envconfig:"PREFS_PATH"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns a Config with usable defaults for everything except the
// Supabase endpoint, which has no sensible default.
func Default() *Config {
	return &Config{
		Supabase: Supabase{Table: "final_db"},
		Server:   Server{Host: "0.0.0.0", Port: 8080},
		Logging:  Logging{Level: "info", Format: "json"},
		Storage:  Storage{PrefsPath: defaultPrefsPath()},
	}
}

// Load reads the YAML configuration file at the given path, parses it into
// a Config, and then applies environment variable overrides. A missing file
// is not an error: env-only configuration is supported.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to env overrides.
	default:
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	if cfg.Supabase.Table == "" {
		cfg.Supabase.Table = "final_db"
	}

	return cfg, nil
}

// defaultPrefsPath places the prefs database under the user config dir,
// falling back to the working directory when that is unavailable.
func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "aveenis-prefs.db"
	}
	return filepath.Join(dir, "aveenis", "prefs.db")
}
