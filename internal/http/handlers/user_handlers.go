package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/http/middleware"
)

// UserHandlers handles profile, notification and admin account requests.
type UserHandlers struct {
	profileSvc      domain.ProfileService
	notificationSvc domain.NotificationService
	logger          zerolog.Logger
}

// NewUserHandlers creates new user handlers.
func NewUserHandlers(
	profileSvc domain.ProfileService,
	notificationSvc domain.NotificationService,
	logger zerolog.Logger,
) *UserHandlers {
	return &UserHandlers{
		profileSvc:      profileSvc,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// ChangeRoleRequest assigns a role to the account behind the identifier.
type ChangeRoleRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// IdentifierRequest names an account by email or full phone number.
type IdentifierRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// SendNotificationRequest fans a notification out to the listed accounts.
type SendNotificationRequest struct {
	AccountIDs []uuid.UUID       `json:"account_ids" binding:"required,min=1"`
	Title      string            `json:"title" binding:"required"`
	Body       string            `json:"body" binding:"required"`
	Data       map[string]string `json:"data,omitempty"`
}

// profileChangesFrom reads the multipart form. A field is a change only
// when the client actually sent it; phone needs both components.
func profileChangesFrom(c *gin.Context) (domain.ProfileChanges, error) {
	var changes domain.ProfileChanges

	if name, ok := c.GetPostForm("name"); ok {
		changes.Name = &name
	}
	if email, ok := c.GetPostForm("email"); ok {
		changes.Email = &email
	}
	icc, iccOK := c.GetPostForm("icc")
	nsn, nsnOK := c.GetPostForm("nsn")
	if iccOK || nsnOK {
		changes.Phone = &domain.Phone{ICC: icc, NSN: nsn}
	}

	header, err := c.FormFile("avatar")
	if err == nil {
		file, err := header.Open()
		if err != nil {
			return changes, err
		}
		changes.Avatar = &domain.AvatarUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
	}
	return changes, nil
}

// UpdateProfile applies profile changes to the authenticated account.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		respondError(c, h.logger, domain.ErrInvalidToken)
		return
	}

	changes, err := profileChangesFrom(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	updated, changed, err := h.profileSvc.Update(c.Request.Context(), account.ID, changes, langFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountView(updated),
			"changed": changed,
		},
	})
}

// SeeNotifications marks every notification seen and returns the list.
func (h *UserHandlers) SeeNotifications(c *gin.Context) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		respondError(c, h.logger, domain.ErrInvalidToken)
		return
	}

	list, err := h.notificationSvc.MarkAllSeen(c.Request.Context(), account.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"notifications": notificationViews(list)},
	})
}

// ClearNotifications empties the notification list.
func (h *UserHandlers) ClearNotifications(c *gin.Context) {
	account, ok := middleware.AccountFrom(c)
	if !ok {
		respondError(c, h.logger, domain.ErrInvalidToken)
		return
	}

	if err := h.notificationSvc.Clear(c.Request.Context(), account.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Notifications cleared"},
	})
}

// FindUser looks an account up by the "identifier" query parameter, an
// email address or a full phone number. Admin only.
func (h *UserHandlers) FindUser(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}

	account, err := h.profileSvc.FindByIdentifier(c.Request.Context(), identifier)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"account": accountView(account)}})
}

// SendNotification fans a notification out to the listed accounts and
// their registered devices. Admin only.
func (h *UserHandlers) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.notificationSvc.Send(c.Request.Context(), req.AccountIDs, req.Title, req.Body, req.Data); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Notification sent"},
	})
}

// ChangeRole assigns a role to the account behind the identifier. Admin
// only.
func (h *UserHandlers) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	account, err := h.profileSvc.ChangeRole(c.Request.Context(), req.Identifier, domain.Role(req.Role))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"account": accountView(account)}})
}

// VerifyAccount force-verifies both identifiers of the account behind the
// identifier. Admin only.
func (h *UserHandlers) VerifyAccount(c *gin.Context) {
	var req IdentifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	account, err := h.profileSvc.VerifyAccount(c.Request.Context(), req.Identifier)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"account": accountView(account)}})
}

// UpdateOtherProfile applies profile changes to the account behind the
// "identifier" form field. Admin only.
func (h *UserHandlers) UpdateOtherProfile(c *gin.Context) {
	identifier, ok := c.GetPostForm("identifier")
	if !ok || identifier == "" {
		respondError(c, h.logger, domain.ErrAccountNotFound)
		return
	}

	changes, err := profileChangesFrom(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	updated, changed, err := h.profileSvc.UpdateByIdentifier(c.Request.Context(), identifier, changes, langFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountView(updated),
			"changed": changed,
		},
	})
}
