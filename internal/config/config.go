package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"timetracker/internal/duration"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds environment-driven configuration.
type Config struct {
	Store struct {
		Driver string `yaml:"driver"` // sqlite (default), mysql or memory
		Path   string `yaml:"path"`   // sqlite file, default simple_time_tracker.sqlite
	} `yaml:"store"`
	MySQL struct {
		DSN string `yaml:"dsn"` // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true
	} `yaml:"mysql"`
	HTTP struct {
		Addr string `yaml:"addr"` // empty disables the HTTP front-end
	} `yaml:"http"`
	UI struct {
		Tick     time.Duration `yaml:"tick"`     // redraw interval while running
		DarkMode bool          `yaml:"darkmode"` // theme before any preference is saved
		Order    string        `yaml:"order"`    // duration grammar, "H:M" or "M:H"
	} `yaml:"ui"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	var cfg Config
	cfg.Store.Driver = StoreSQLite
	cfg.Store.Path = "simple_time_tracker.sqlite"
	cfg.UI.Tick = 500 * time.Millisecond
	cfg.UI.DarkMode = true
	cfg.UI.Order = "H:M"
	return cfg
}

// Load reads configuration from an optional YAML file and then from
// environment variables, which take precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TRACKER_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("TRACKER_STORE"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("TRACKER_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}
	if v := os.Getenv("TRACKER_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("TRACKER_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, errors.New("TRACKER_TICK must be a duration")
		}
		cfg.UI.Tick = d
	}
	if v := os.Getenv("TRACKER_DARKMODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.New("TRACKER_DARKMODE must be a boolean")
		}
		cfg.UI.DarkMode = b
	}
	if v := os.Getenv("TRACKER_ORDER"); v != "" {
		cfg.UI.Order = v
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreSQLite:
		if c.Store.Path == "" {
			return errors.New("store path is required for sqlite")
		}
	case StoreMySQL:
		if c.MySQL.DSN == "" {
			return errors.New("MYSQL_DSN is required for the mysql store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.UI.Tick <= 0 {
		return errors.New("tick interval must be positive")
	}
	if _, err := duration.ParseOrder(c.UI.Order); err != nil {
		return err
	}
	return nil
}
