package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleversamer/accountsvc/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 9090
  gin_mode: test
database:
  dsn: "postgres://u:p@localhost:5432/db"
redis:
  addr: "localhost:6379"
  db: 3
jwt:
  secret: "s3cret"
  issuer: "accountsvc"
  password_salt: "salty"
verification:
  email:
    length: 5
    ttl: 15m
  phone:
    length: 4
    ttl: 5m
  resend_window: 90s
notifications:
  capacity: 7
smtp:
  host: "mail.local"
  port: 465
  from: "no-reply@local"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.JWTSecret != "s3cret" || cfg.PasswordSalt != "salty" {
		t.Error("jwt section not mapped")
	}

	email := cfg.Verification[domain.PurposeEmail]
	if email.Length != 5 || email.TTL != 15*time.Minute {
		t.Errorf("email policy = %+v, want length 5 ttl 15m", email)
	}
	phone := cfg.Verification[domain.PurposePhone]
	if phone.TTL != 5*time.Minute {
		t.Errorf("phone ttl = %v, want 5m", phone.TTL)
	}

	// The password purpose was omitted and falls back to the defaults.
	password := cfg.Verification[domain.PurposePassword]
	if password.Length != defaultCodeLength || password.TTL != defaultCodeTTL {
		t.Errorf("password policy = %+v, want defaults", password)
	}

	if cfg.VerificationResendWnd != 90*time.Second {
		t.Errorf("resend window = %v, want 90s", cfg.VerificationResendWnd)
	}
	if cfg.NotificationsCapacity != 7 {
		t.Errorf("capacity = %d, want 7", cfg.NotificationsCapacity)
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfigFile(t, "app:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	for _, purpose := range []domain.Purpose{domain.PurposeEmail, domain.PurposePhone, domain.PurposePassword} {
		p := cfg.Verification[purpose]
		if p.Length != defaultCodeLength || p.TTL != defaultCodeTTL {
			t.Errorf("%s policy = %+v, want defaults", purpose, p)
		}
	}
	if cfg.NotificationsCapacity != defaultCapacity {
		t.Errorf("capacity = %d, want %d", cfg.NotificationsCapacity, defaultCapacity)
	}
	if cfg.VerificationResendWnd != time.Minute {
		t.Errorf("resend window = %v, want 1m", cfg.VerificationResendWnd)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DSN", "postgres://env")

	cfg, err := LoadFile(writeConfigFile(t, `
app:
  port: 8080
jwt:
  secret: "from-file"
database:
  dsn: "postgres://file"
`))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, env override lost", cfg.JWTSecret)
	}
	if cfg.DSN != "postgres://env" {
		t.Errorf("DSN = %q, env override lost", cfg.DSN)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file did not fail")
	}
	if _, err := LoadFile(writeConfigFile(t, "not: [valid")); err == nil {
		t.Error("malformed yaml did not fail")
	}
	if _, err := LoadFile(writeConfigFile(t, "verification:\n  email:\n    ttl: tomorrow\n")); err == nil {
		t.Error("bad TTL did not fail")
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 8, Max: 64}

	tests := []struct {
		n    int
		want bool
	}{
		{7, false},
		{8, true},
		{64, true},
		{65, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.n); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if !l.Password.Contains(8) || l.Password.Contains(7) {
		t.Errorf("password range = %+v, want min 8", l.Password)
	}
	if !l.DeviceToken.Contains(0) {
		t.Error("device token must allow absence")
	}
}

func TestLoadFile_ErrorMentionsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}
