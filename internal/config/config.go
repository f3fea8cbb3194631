package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleversamer/accountsvc/domain"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret       string `yaml:"secret"`
	Issuer       string `yaml:"issuer"`
	PasswordSalt string `yaml:"password_salt"`
}

type PurposeConfig struct {
	Length int    `yaml:"length"`
	TTL    string `yaml:"ttl"`
}

type VerificationConfig struct {
	Email        PurposeConfig `yaml:"email"`
	Phone        PurposeConfig `yaml:"phone"`
	Password     PurposeConfig `yaml:"password"`
	ResendWindow string        `yaml:"resend_window"`
}

type NotificationsConfig struct {
	Capacity int `yaml:"capacity"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type ConfigFile struct {
	App           AppConfig           `yaml:"app"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	JWT           JWTConfig           `yaml:"jwt"`
	Verification  VerificationConfig  `yaml:"verification"`
	Notifications NotificationsConfig `yaml:"notifications"`
	SMTP          SMTPConfig          `yaml:"smtp"`
	Twilio        TwilioConfig        `yaml:"twilio"`
	Google        GoogleConfig        `yaml:"google"`
	S3            S3Config            `yaml:"s3"`
}

// Purpose holds the immutable issuance parameters for one verification
// purpose.
type Purpose struct {
	Length int
	TTL    time.Duration
}

// Config is the immutable process configuration, constructed once at start
// and injected everywhere.
type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret    string
	JWTIssuer    string
	PasswordSalt string

	Verification          map[domain.Purpose]Purpose
	VerificationResendWnd time.Duration

	NotificationsCapacity int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	GoogleClientID string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	Limits Limits
}

const (
	defaultCodeLength = 4
	defaultCodeTTL    = 10 * time.Minute
	defaultCapacity   = 10
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFile("config/config.yml")
}

// LoadFile parses the given yaml config file.
func LoadFile(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return fromFile(&file)
}

func fromFile(file *ConfigFile) (*Config, error) {
	verification := make(map[domain.Purpose]Purpose, 3)
	for purpose, pc := range map[domain.Purpose]PurposeConfig{
		domain.PurposeEmail:    file.Verification.Email,
		domain.PurposePhone:    file.Verification.Phone,
		domain.PurposePassword: file.Verification.Password,
	} {
		p := Purpose{Length: pc.Length, TTL: defaultCodeTTL}
		if p.Length <= 0 {
			p.Length = defaultCodeLength
		}
		if pc.TTL != "" {
			ttl, err := time.ParseDuration(pc.TTL)
			if err != nil {
				return nil, fmt.Errorf("invalid %s code TTL: %w", purpose, err)
			}
			p.TTL = ttl
		}
		verification[purpose] = p
	}

	resendWnd := time.Minute
	if file.Verification.ResendWindow != "" {
		wnd, err := time.ParseDuration(file.Verification.ResendWindow)
		if err != nil {
			return nil, fmt.Errorf("invalid verification resend window: %w", err)
		}
		resendWnd = wnd
	}

	capacity := file.Notifications.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Config{
		Port:    fmt.Sprintf("%d", file.App.Port),
		GinMode: file.App.GinMode,

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     file.Redis.Addr,
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       file.Redis.DB,

		JWTSecret:    env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:    file.JWT.Issuer,
		PasswordSalt: env("PASSWORD_SALT", file.JWT.PasswordSalt),

		Verification:          verification,
		VerificationResendWnd: resendWnd,

		NotificationsCapacity: capacity,

		SMTPHost:     file.SMTP.Host,
		SMTPPort:     file.SMTP.Port,
		SMTPUsername: env("SMTP_USERNAME", file.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", file.SMTP.Password),
		SMTPFrom:     file.SMTP.From,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:  file.Twilio.FromNumber,

		GoogleClientID: file.Google.ClientID,

		S3Endpoint:  file.S3.Endpoint,
		S3Region:    file.S3.Region,
		S3Bucket:    file.S3.Bucket,
		S3AccessKey: env("S3_ACCESS_KEY", file.S3.AccessKey),
		S3SecretKey: env("S3_SECRET_KEY", file.S3.SecretKey),

		Limits: DefaultLimits(),
	}, nil
}
