package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/http/middleware"
)

// AuthHandlers handles registration, login, verification codes and
// password lifecycle requests.
type AuthHandlers struct {
	authSvc         domain.AuthService
	verificationSvc domain.VerificationService
	tokenSvc        domain.TokenService
	logger          zerolog.Logger
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(
	authSvc domain.AuthService,
	verificationSvc domain.VerificationService,
	tokenSvc domain.TokenService,
	logger zerolog.Logger,
) *AuthHandlers {
	return &AuthHandlers{
		authSvc:         authSvc,
		verificationSvc: verificationSvc,
		tokenSvc:        tokenSvc,
		logger:          logger,
	}
}

// PhoneRequest is the two-part phone number as clients submit it.
type PhoneRequest struct {
	ICC string `json:"icc" binding:"required,startswith=+"`
	NSN string `json:"nsn" binding:"required,numeric,min=4,max=13"`
}

func (p PhoneRequest) domain() domain.Phone {
	return domain.Phone{ICC: p.ICC, NSN: p.NSN}
}

// RegisterRequest represents a registration request. AuthType selects the
// email-and-password path or the Google ID-token path.
type RegisterRequest struct {
	AuthType    string       `json:"auth_type" binding:"omitempty,oneof=email google"`
	Name        string       `json:"name" binding:"omitempty,min=8,max=64"`
	Email       string       `json:"email" binding:"omitempty,email,min=6,max=256"`
	Phone       PhoneRequest `json:"phone" binding:"required"`
	Password    string       `json:"password" binding:"omitempty,min=8,max=64"`
	GoogleToken string       `json:"google_token,omitempty"`
	Role        string       `json:"role,omitempty"`
	DeviceToken string       `json:"device_token" binding:"omitempty,max=1024"`
}

// LoginRequest represents a login request. Identifier is an email address
// or a full phone number.
type LoginRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DeviceToken string `json:"device_token" binding:"omitempty,max=1024"`
}

// VerifyCodeRequest represents a code submission for the email or phone
// slot.
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ForgotPasswordRequest asks for a reset code over a chosen channel.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Channel    string `json:"channel" binding:"omitempty,oneof=email phone"`
}

// ResetPasswordRequest consumes a reset code and sets a new password.
type ResetPasswordRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// ChangePasswordRequest rotates the password of the authenticated account.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// Register handles account registration for both auth types.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	var (
		account *domain.Account
		err     error
	)
	if req.AuthType == "google" {
		account, err = h.authSvc.RegisterWithGoogle(c.Request.Context(), req.GoogleToken, req.Phone.domain(), req.DeviceToken)
	} else {
		account, err = h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone.domain(),
			Password:    req.Password,
			Role:        domain.Role(req.Role),
			DeviceToken: req.DeviceToken,
			Lang:        langFrom(c),
		})
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.tokenSvc.Generate(account)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"account": accountView(account),
			"token":   token,
		},
	})
}

// Login handles account login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Identifier, req.Password, req.DeviceToken)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountView(result.Account),
			"token":   result.Token,
		},
	})
}

// Me returns the authenticated account.
func (h *AuthHandlers) Me(c *gin.Context) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		respondError(c, h.logger, domain.ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"account": accountView(account)}})
}

// VerifyCode consumes the armed code for the purpose baked into the route.
func (h *AuthHandlers) VerifyCode(purpose domain.Purpose) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.AccountFrom(c)
		if !ok {
			respondError(c, h.logger, domain.ErrInvalidToken)
			return
		}

		var req VerifyCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		updated, err := h.verificationSvc.VerifyEmailOrPhone(c.Request.Context(), purpose, account.ID, req.Code)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"account": accountView(updated)}})
	}
}

// ResendCode re-arms the slot for the purpose and redelivers the code.
func (h *AuthHandlers) ResendCode(purpose domain.Purpose) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.AccountFrom(c)
		if !ok {
			respondError(c, h.logger, domain.ErrInvalidToken)
			return
		}

		if err := h.verificationSvc.Resend(c.Request.Context(), purpose, account.ID, langFrom(c)); err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"message": "Verification code sent"},
		})
	}
}

// ForgotPassword sends a reset code to the account behind the identifier.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "email"
	}

	if err := h.verificationSvc.SendResetPasswordCode(c.Request.Context(), req.Identifier, channel, langFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset code sent"},
	})
}

// ResetPassword consumes the reset code and installs the new password.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	account, err := h.verificationSvc.ResetPasswordWithCode(c.Request.Context(), req.Identifier, req.Code, req.NewPassword)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// The digest baked into outstanding tokens no longer matches, so a
	// fresh token is the only way back in.
	token, err := h.tokenSvc.Generate(account)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountView(account),
			"token":   token,
		},
	})
}

// ChangePassword rotates the password of the authenticated account.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		respondError(c, h.logger, domain.ErrInvalidToken)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), account.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password changed"},
	})
}
