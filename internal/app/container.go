package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/config"
	"github.com/cleversamer/accountsvc/internal/infrastructure/auth"
	"github.com/cleversamer/accountsvc/internal/infrastructure/database"
	"github.com/cleversamer/accountsvc/internal/infrastructure/identity"
	"github.com/cleversamer/accountsvc/internal/infrastructure/notifications"
	"github.com/cleversamer/accountsvc/internal/infrastructure/repositories"
	"github.com/cleversamer/accountsvc/internal/infrastructure/storage"
	"github.com/cleversamer/accountsvc/internal/services"
)

// Container holds all dependencies.
type Container struct {
	Config *config.Config
	Logger zerolog.Logger

	DB          *gorm.DB
	RedisClient *redis.Client

	AccountRepo domain.AccountRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	Mailer          domain.Mailer
	SMS             domain.SMSSender
	Push            domain.PushSender
	Files           domain.FileStore
	Identity        domain.IdentityVerifier
	VerificationSvc domain.VerificationService
	AccessSvc       domain.AccessService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
	ProfileSvc      domain.ProfileService
}

// NewContainer creates and initializes all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		return nil, err
	}
	if err := c.initServices(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		return err
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initServices(ctx context.Context) error {
	c.AccountRepo = repositories.NewAccountRepository(c.DB)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.PasswordSalt)
	c.Mailer = notifications.NewMailerService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	c.SMS = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Logger,
	)
	c.Push = notifications.NewLogPushSender(c.Logger)
	c.Identity = identity.NewGoogleVerifier(c.Config.GoogleClientID)

	files, err := storage.NewS3Store(ctx, storage.S3Options{
		Endpoint:  c.Config.S3Endpoint,
		Region:    c.Config.S3Region,
		Bucket:    c.Config.S3Bucket,
		AccessKey: c.Config.S3AccessKey,
		SecretKey: c.Config.S3SecretKey,
	})
	if err != nil {
		return err
	}
	c.Files = files

	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return err
	}
	c.AccessSvc = services.NewAccessService(cas.E)

	policies := make(map[domain.Purpose]services.CodePolicy, len(c.Config.Verification))
	for purpose, p := range c.Config.Verification {
		policies[purpose] = services.CodePolicy{Length: p.Length, TTL: p.TTL}
	}
	c.VerificationSvc = services.NewVerificationService(
		c.AccountRepo,
		c.PasswordSvc,
		c.Mailer,
		c.SMS,
		c.RedisClient,
		services.VerificationConfig{
			Policies:     policies,
			ResendWindow: c.Config.VerificationResendWnd,
		},
	)

	c.NotificationSvc = services.NewNotificationService(c.AccountRepo, c.Push, c.Config.NotificationsCapacity)
	c.AuthSvc = services.NewAuthService(
		c.AccountRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.VerificationSvc,
		c.Identity,
		c.Mailer,
		c.SMS,
	)
	c.ProfileSvc = services.NewProfileService(c.AccountRepo, c.VerificationSvc, c.Files, c.Mailer)
	return nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
