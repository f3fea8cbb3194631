package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/internal/config"
	httpx "github.com/cleversamer/accountsvc/internal/http"
	"github.com/cleversamer/accountsvc/internal/http/handlers"
	"github.com/cleversamer/accountsvc/internal/http/middleware"
)

// Run wires the container and serves HTTP until the listener fails.
func Run(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.VerificationSvc, container.TokenSvc, logger)
	userH := handlers.NewUserHandlers(container.ProfileSvc, container.NotificationSvc, logger)

	authMW := middleware.NewAuthMW(container.TokenSvc, container.AccountRepo)
	gateMW := middleware.NewAccessMW(container.AccessSvc)

	r := httpx.BuildRouter(authH, userH, authMW, gateMW)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}
