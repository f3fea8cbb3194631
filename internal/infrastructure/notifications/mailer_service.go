package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cleversamer/accountsvc/domain"
)

// MailerServiceImpl implements domain.Mailer over SMTP.
type MailerServiceImpl struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerService creates a new SMTP mailer.
func NewMailerService(host string, port int, username, password, from string) domain.Mailer {
	return &MailerServiceImpl{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// subjects per template kind and language.
var subjects = map[domain.MailKind]domain.Message{
	domain.MailRegister: {
		EN: "Verify your email address",
		AR: "تحقق من بريدك الإلكتروني",
	},
	domain.MailVerifyEmail: {
		EN: "Your new verification code",
		AR: "كود التحقق الجديد الخاص بك",
	},
	domain.MailChangeEmail: {
		EN: "Confirm your new email address",
		AR: "أكّد بريدك الإلكتروني الجديد",
	},
	domain.MailResetPassword: {
		EN: "Reset your password",
		AR: "إعادة تعيين كلمة المرور",
	},
}

var bodies = map[domain.MailKind]domain.Message{
	domain.MailRegister: {
		EN: "Hello %s,\n\nYour verification code is: %s",
		AR: "مرحبًا %s،\n\nكود التحقق الخاص بك هو: %s",
	},
	domain.MailVerifyEmail: {
		EN: "Hello %s,\n\nHere is the verification code you requested: %s",
		AR: "مرحبًا %s،\n\nإليك كود التحقق الذي طلبته: %s",
	},
	domain.MailChangeEmail: {
		EN: "Hello %s,\n\nConfirm your new email with this code: %s",
		AR: "مرحبًا %s،\n\nأكّد بريدك الجديد بهذا الكود: %s",
	},
	domain.MailResetPassword: {
		EN: "Hello %s,\n\nYour password reset code is: %s",
		AR: "مرحبًا %s،\n\nكود إعادة تعيين كلمة المرور هو: %s",
	},
}

// Send implements domain.Mailer.
func (m *MailerServiceImpl) Send(kind domain.MailKind, lang, to string, payload map[string]string) error {
	subject, ok := subjects[kind]
	if !ok {
		return fmt.Errorf("unknown mail kind %q", kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject.Resolve(lang))
	msg.SetBody("text/plain", fmt.Sprintf(bodies[kind].Resolve(lang), payload["name"], payload["code"]))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	return nil
}
