package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/http/handlers"
	"github.com/cleversamer/accountsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, authmw *middleware.AuthMW, gate *middleware.AccessMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/password/forgot", ah.ForgotPassword)
	auth.POST("/password/reset", ah.ResetPassword)

	v := r.Group("/", authmw.WithToken())
	v.GET("/auth/me", gate.Require(domain.ReadOwn, domain.ResourceAccount), ah.Me)
	v.POST("/auth/email/verify",
		gate.Require(domain.UpdateOwn, domain.ResourceEmailCode),
		ah.VerifyCode(domain.PurposeEmail))
	v.POST("/auth/email/code",
		gate.Require(domain.ReadOwn, domain.ResourceEmailCode),
		ah.ResendCode(domain.PurposeEmail))
	v.POST("/auth/phone/verify",
		gate.Require(domain.UpdateOwn, domain.ResourcePhoneCode),
		ah.VerifyCode(domain.PurposePhone))
	v.POST("/auth/phone/code",
		gate.Require(domain.ReadOwn, domain.ResourcePhoneCode),
		ah.ResendCode(domain.PurposePhone))
	v.PATCH("/auth/password",
		gate.Require(domain.UpdateOwn, domain.ResourcePassword),
		ah.ChangePassword)

	v.PATCH("/users/me",
		gate.Require(domain.UpdateOwn, domain.ResourceAccount),
		uh.UpdateProfile)
	v.PATCH("/users/me/notifications/seen",
		gate.Require(domain.UpdateOwn, domain.ResourceNotifications),
		uh.SeeNotifications)
	v.DELETE("/users/me/notifications",
		gate.Require(domain.DeleteOwn, domain.ResourceNotifications),
		uh.ClearNotifications)

	adm := r.Group("/admin", authmw.WithToken())
	adm.GET("/users/find",
		gate.Require(domain.ReadAny, domain.ResourceAccount),
		uh.FindUser)
	adm.POST("/notifications",
		gate.Require(domain.CreateAny, domain.ResourceNotifications),
		uh.SendNotification)
	adm.PATCH("/users/role",
		gate.Require(domain.UpdateAny, domain.ResourceRole),
		uh.ChangeRole)
	adm.PATCH("/users/verify",
		gate.Require(domain.UpdateAny, domain.ResourceEmailCode),
		uh.VerifyAccount)
	adm.PATCH("/users/profile",
		gate.Require(domain.UpdateAny, domain.ResourceAccount),
		uh.UpdateOtherProfile)

	return r
}
