package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setGatewayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_URL", "https://records.example.com")
	t.Setenv("STORE_API_KEY", "anon-key")
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("ADMIN_ACCOUNTS", "dombit_admin:$2a$10$abcdefghijklmnopqrstuv,second:$2a$10$zyxwvutsrqponmlkjihgfe")
}

func TestLoadGatewayDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	setGatewayEnv(t)

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("load gateway: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.Store.Timeout != 10*time.Second {
		t.Fatalf("store timeout = %v, want 10s", cfg.Store.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("session ttl = %v, want 12h", cfg.Session.TTL)
	}
	if !cfg.Session.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
	if got := cfg.Session.Accounts["dombit_admin"]; got != "$2a$10$abcdefghijklmnopqrstuv" {
		t.Fatalf("account hash = %q", got)
	}
	if len(cfg.Session.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(cfg.Session.Accounts))
	}
	if cfg.ChangesChannel != "admin-records" {
		t.Fatalf("changes channel = %q", cfg.ChangesChannel)
	}
}

func TestLoadGatewayMissingStoreIsFatal(t *testing.T) {
	chdir(t, t.TempDir())
	setGatewayEnv(t)
	t.Setenv("STORE_URL", "")

	_, err := LoadGateway()
	if err == nil {
		t.Fatal("expected error for empty STORE_URL")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadGatewayRejectsUnknownTimeZone(t *testing.T) {
	chdir(t, t.TempDir())
	setGatewayEnv(t)
	t.Setenv("TIME_ZONE", "Mars/Olympus")

	if _, err := LoadGateway(); err == nil {
		t.Fatal("expected error for unknown time zone")
	}
}

func TestLoadStoreDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_API_KEY", "anon-key")

	cfg, err := LoadStore()
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if cfg.Server.Port != "8000" || cfg.Database.Driver != "sqlite3" {
		t.Fatalf("unexpected defaults: port=%q driver=%q", cfg.Server.Port, cfg.Database.Driver)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("cors origins = %v", cfg.CORSAllowedOrigins)
	}

	t.Setenv("STORE_DB_DRIVER", "mysql")
	if _, err := LoadStore(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadAnnouncerRequiresTelegram(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	if _, err := LoadAnnouncer(); err == nil {
		t.Fatal("expected error without telegram settings")
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	cfg, err := LoadAnnouncer()
	if err != nil {
		t.Fatalf("load announcer: %v", err)
	}
	if cfg.Telegram.ChatID != -100200300 {
		t.Fatalf("chat id = %d", cfg.Telegram.ChatID)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg struct {
		Port int `env:"ALUMNI_TEST_PORT" envDefault:"123"`
	}
	t.Setenv("ALUMNI_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
