package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultConfigPath = "config.yaml"

// Load reads the YAML file at path (when it exists) and overlays PORTAL_* env vars.
// An explicitly named file that is missing is an error; the default path is optional.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath
	}
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env config: %w", err)
		}
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv("PORTAL_LISTEN_ADDR") == "" {
		cfg.ListenAddr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("db_path is required for sqlite")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DBURL) == "" {
			return errors.New("db_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.Maintenance.Keep < 0 {
		return errors.New("maintenance.keep must not be negative")
	}
	return nil
}

// Usage renders the env var reference for --help output.
func Usage() string {
	var cfg AppConfig
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
