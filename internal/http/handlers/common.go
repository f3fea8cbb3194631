package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/domain"
)

// langFrom picks the response language from the Accept-Language header.
// Arabic is the only alternative to the English default.
func langFrom(c *gin.Context) string {
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "ar") {
		return "ar"
	}
	return "en"
}

// respondError writes a domain failure as a structured payload. Anything
// that is not a domain error is an infrastructure fault; it is logged and
// masked behind a generic message.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		derr = domain.ErrServiceUnavailable
	}
	c.JSON(derr.Status, gin.H{
		"status":  "error",
		"kind":    derr.Kind,
		"message": derr.Message,
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": "error",
		"kind":   "invalid_request",
		"message": domain.Message{
			EN: err.Error(),
			AR: "الطلب غير صالح",
		},
	})
}

// accountView is the serialized account shape every endpoint returns.
// Password material and verification codes never leave the service.
func accountView(a *domain.Account) gin.H {
	return gin.H{
		"id":             a.ID,
		"name":           a.Name,
		"email":          a.Email,
		"phone":          gin.H{"icc": a.Phone.ICC, "nsn": a.Phone.NSN, "full": a.Phone.Full()},
		"role":           a.Role,
		"avatar_url":     a.AvatarURL,
		"email_verified": a.EmailVerified,
		"phone_verified": a.PhoneVerified,
		"last_login":     a.LastLogin,
		"created_at":     a.CreatedAt,
		"updated_at":     a.UpdatedAt,
	}
}

func notificationViews(list []domain.Notification) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, n := range list {
		out = append(out, gin.H{
			"title":      n.Title,
			"body":       n.Body,
			"data":       n.Data,
			"seen":       n.Seen,
			"created_at": n.CreatedAt,
		})
	}
	return out
}
