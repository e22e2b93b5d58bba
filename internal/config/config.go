package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server holds the HTTP listener settings shared by every binary.
type Server struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         string        `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

// Addr returns host:port.
func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

// Gateway configures the admin gateway.
type Gateway struct {
	Server Server

	Store struct {
		URL     string        `env:"STORE_URL,required,notEmpty"`
		APIKey  string        `env:"STORE_API_KEY,required,notEmpty"`
		Timeout time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`
	}

	Redis struct {
		URL string `env:"REDIS_URL"`
	}

	Session struct {
		Secret       string            `env:"SESSION_SECRET,required,notEmpty"`
		TTL          time.Duration     `env:"SESSION_TTL" envDefault:"12h"`
		CookieSecure bool              `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
		Accounts     map[string]string `env:"ADMIN_ACCOUNTS,required,notEmpty" envSeparator:"," envKeyValSeparator:":"`
	}

	SubmissionTTL  time.Duration `env:"SUBMISSION_TTL" envDefault:"10m"`
	TimeZone       string        `env:"TIME_ZONE" envDefault:"UTC"`
	PreviewTimeout time.Duration `env:"PREVIEW_TIMEOUT" envDefault:"5s"`
	ChangesChannel string        `env:"CHANGES_CHANNEL" envDefault:"admin-records"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Location resolves TimeZone.
func (g *Gateway) Location() (*time.Location, error) {
	return time.LoadLocation(g.TimeZone)
}

// Store configures the self-hosted record store.
type Store struct {
	Server Server

	APIKey string `env:"STORE_API_KEY,required,notEmpty"`

	Database struct {
		Driver string `env:"STORE_DB_DRIVER" envDefault:"sqlite3"`
		DSN    string `env:"STORE_DB_DSN" envDefault:"./data/records.db"`
	}

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"debug"`
	OTLPEndpoint       string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Announcer configures the Telegram announcer.
type Announcer struct {
	Redis struct {
		URL string `env:"REDIS_URL,required,notEmpty"`
	}
	ChangesChannel string `env:"CHANGES_CHANNEL" envDefault:"admin-records"`

	Telegram struct {
		Token  string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
		ChatID int64  `env:"TELEGRAM_CHAT_ID,required"`
	}

	TimeZone string `env:"TIME_ZONE" envDefault:"UTC"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadGateway reads the gateway configuration from .env and the environment.
func LoadGateway() (*Gateway, error) {
	cfg := &Gateway{}
	cfg.Server.Port = "8080"
	if err := load(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("parse env: TIME_ZONE: %w", err)
	}
	return cfg, nil
}

// LoadStore reads the record store configuration.
func LoadStore() (*Store, error) {
	cfg := &Store{}
	cfg.Server.Port = "8000"
	if err := load(cfg); err != nil {
		return nil, err
	}
	switch cfg.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return nil, fmt.Errorf("parse env: STORE_DB_DRIVER %q is not sqlite3 or pgx", cfg.Database.Driver)
	}
	return cfg, nil
}

// LoadAnnouncer reads the announcer configuration.
func LoadAnnouncer() (*Announcer, error) {
	cfg := &Announcer{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load applies an optional .env file, then parses target. Values already
// present in the environment win over the file.
func load(target any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return ParseEnv(target)
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
