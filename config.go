package folio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/internal/logger"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Portfolio")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags

	Addr            string        `yaml:"addr"`             // Listen address (default ":3000")
	DBDriver        Dialect       `yaml:"db_driver"`        // "sqlite" (default) or "pgx"
	DatabaseURL     string        `yaml:"database_url"`     // SQLite path or Postgres DSN (default "data/folio.db")
	StaticDir       string        `yaml:"static_dir"`       // Static assets and uploads (default "public")
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // Graceful shutdown (default 10s)

	SessionSecret string        `yaml:"session_secret"` // Required: cookie and token signing secret
	CookieSecure  bool          `yaml:"cookie_secure"`  // Set true for HTTPS
	TokenTTL      time.Duration `yaml:"token_ttl"`      // Bearer token lifetime (default 12h)

	// Bootstrap owner, created on start when no owner exists yet.
	OwnerName     string `yaml:"owner_name"`
	OwnerEmail    string `yaml:"owner_email"`
	OwnerPassword string `yaml:"owner_password"`

	LogLevel  string `yaml:"log_level"`  // debug | info | warn | error (default info)
	PrettyLog bool   `yaml:"pretty_log"` // colored development output
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DBDriver == "" {
		c.DBDriver = DialectSQLite
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "data/folio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 12 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports configuration the server cannot start without.
func (c *SiteConfig) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}
	if c.DBDriver != DialectSQLite && c.DBDriver != DialectPostgres {
		return fmt.Errorf("folio: unsupported db driver %q", c.DBDriver)
	}
	return nil
}

// LoadConfig reads the optional YAML file at path, then applies FOLIO_*
// environment variables on top and fills defaults.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Name = getenv("FOLIO_SITE_NAME", cfg.Name)
	cfg.URL = getenv("FOLIO_SITE_URL", cfg.URL)
	cfg.Description = getenv("FOLIO_SITE_DESCRIPTION", cfg.Description)

	cfg.Addr = getenv("FOLIO_ADDR", cfg.Addr)
	cfg.DBDriver = Dialect(getenv("FOLIO_DB_DRIVER", string(cfg.DBDriver)))
	cfg.DatabaseURL = getenv("FOLIO_DATABASE_URL", cfg.DatabaseURL)
	cfg.StaticDir = getenv("FOLIO_STATIC_DIR", cfg.StaticDir)
	cfg.ShutdownTimeout = mustDuration("FOLIO_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	cfg.SessionSecret = getenv("FOLIO_SESSION_SECRET", cfg.SessionSecret)
	cfg.CookieSecure = mustBool("FOLIO_COOKIE_SECURE", cfg.CookieSecure)
	cfg.TokenTTL = mustDuration("FOLIO_TOKEN_TTL", cfg.TokenTTL)

	cfg.OwnerName = getenv("FOLIO_OWNER_NAME", cfg.OwnerName)
	cfg.OwnerEmail = getenv("FOLIO_OWNER_EMAIL", cfg.OwnerEmail)
	cfg.OwnerPassword = getenv("FOLIO_OWNER_PASSWORD", cfg.OwnerPassword)

	cfg.LogLevel = strings.ToLower(getenv("FOLIO_LOG_LEVEL", cfg.LogLevel))
	cfg.PrettyLog = mustBool("FOLIO_PRETTY_LOG", cfg.PrettyLog)

	cfg.setDefaults()
	return cfg, nil
}

// NewLogger builds the zap logger described by the config.
func (c SiteConfig) NewLogger() (logger.Logger, error) {
	return logger.New(c.LogLevel, c.PrettyLog)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory for static assets and uploads.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithStore uses an already opened store instead of opening one from the
// configuration. The App does not take ownership of it.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
		a.externalStore = true
	}
}

// WithLogger sets the application logger.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
