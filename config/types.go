package config

import (
	"strings"
	"time"
)

type AppConfig struct {
	DBDriver    string            `yaml:"db_driver" env:"PORTAL_DB_DRIVER" env-default:"sqlite"`
	DBPath      string            `yaml:"db_path" env:"PORTAL_DB_PATH" env-default:"hospital_faq.db"`
	DBURL       string            `yaml:"db_url" env:"PORTAL_DB_URL"`
	ListenAddr  string            `yaml:"listen_addr" env:"PORTAL_LISTEN_ADDR" env-default:"0.0.0.0:3001"`
	StaticDir   string            `yaml:"static_dir" env:"PORTAL_STATIC_DIR"`
	Timezone    string            `yaml:"timezone" env:"PORTAL_TIMEZONE"`
	LogLevel    string            `yaml:"log_level" env:"PORTAL_LOG_LEVEL" env-default:"info"`
	LogFormat   string            `yaml:"log_format" env:"PORTAL_LOG_FORMAT" env-default:"console"`
	SeedOnStart bool              `yaml:"seed_on_start" env:"PORTAL_SEED_ON_START" env-default:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Client      ClientConfig      `yaml:"client"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"PORTAL_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"PORTAL_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"PORTAL_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"PORTAL_HTTP_MAX_BODY_BYTES" env-default:"1048576"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"PORTAL_HTTP_CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type MaintenanceConfig struct {
	Enabled     bool   `yaml:"enabled" env:"PORTAL_MAINTENANCE_ENABLED" env-default:"true"`
	Schedule    string `yaml:"schedule" env:"PORTAL_MAINTENANCE_SCHEDULE" env-default:"30 3 * * *"`
	SnapshotDir string `yaml:"snapshot_dir" env:"PORTAL_MAINTENANCE_SNAPSHOT_DIR"`
	Keep        int    `yaml:"keep" env:"PORTAL_MAINTENANCE_KEEP" env-default:"7"`
}

type ClientConfig struct {
	BaseURL   string        `yaml:"base_url" env:"PORTAL_CLIENT_BASE_URL" env-default:"http://localhost:3001"`
	Timeout   time.Duration `yaml:"timeout" env:"PORTAL_CLIENT_TIMEOUT" env-default:"10s"`
	DraftPath string        `yaml:"draft_path" env:"PORTAL_CLIENT_DRAFT_PATH"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func (c *AppConfig) IsPostgres() bool {
	if c == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.DBDriver), DriverPostgres)
}

// Location resolves the zone used to interpret zone-less incident timestamps.
// An empty or unknown zone falls back to TZ and then to the process local zone.
func (c *AppConfig) Location() *time.Location {
	zone := ""
	if c != nil {
		zone = strings.TrimSpace(c.Timezone)
	}
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			return loc
		}
	}
	return time.Local
}
