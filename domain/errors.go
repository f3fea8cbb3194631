package domain

import (
	"errors"
	"net/http"
)

// ErrDuplicateKey is the store's distinguishable unique-index conflict
// signal. It never reaches callers directly; services map it to
// ErrEmailOrPhoneUsed, ErrEmailUsed or ErrPhoneUsed.
var ErrDuplicateKey = errors.New("duplicate key")

// Message is a bilingual user-facing message.
type Message struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Resolve returns the message for the requested language, defaulting to
// English.
func (m Message) Resolve(lang string) string {
	if lang == "ar" {
		return m.AR
	}
	return m.EN
}

// Error is the single structured failure type every domain operation
// returns. Kind is stable and machine-readable; Status is the transport
// status class the HTTP layer responds with.
type Error struct {
	Kind    string  `json:"kind"`
	Status  int     `json:"-"`
	Message Message `json:"message"`
}

func (e *Error) Error() string { return e.Message.EN }

// Authentication failures.
var (
	ErrAccountNotFound = &Error{
		Kind:   "account_not_found",
		Status: http.StatusNotFound,
		Message: Message{
			EN: "Account not found",
			AR: "الحساب غير موجود",
		},
	}
	ErrIncorrectCredentials = &Error{
		Kind:   "incorrect_credentials",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "Incorrect login credentials",
			AR: "بيانات الدخول غير صحيحة",
		},
	}
	ErrEmailOrPhoneUsed = &Error{
		Kind:   "email_or_phone_used",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "Email or phone number is already used",
			AR: "البريد الإلكتروني أو رقم الهاتف مستخدم مسبقًا",
		},
	}
	ErrEmailOrPhoneNotUsed = &Error{
		Kind:   "email_or_phone_not_used",
		Status: http.StatusNotFound,
		Message: Message{
			EN: "Email or phone number is not used",
			AR: "البريد الإلكتروني أو رقم الهاتف غير مستخدم",
		},
	}
	ErrInvalidToken = &Error{
		Kind:   "invalid_token",
		Status: http.StatusUnauthorized,
		Message: Message{
			EN: "You have to login in order to perform this action",
			AR: "يجب عليك تسجيل الدخول لتقوم بهذه العمليّة",
		},
	}
	ErrInvalidExternalToken = &Error{
		Kind:   "invalid_external_token",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "There's an issue with your google mail",
			AR: "يوجد هناك مشكلة في بريد جوجل الخاص بك",
		},
	}
	ErrExternalAuthUnavailable = &Error{
		Kind:   "external_auth_unavailable",
		Status: http.StatusInternalServerError,
		Message: Message{
			EN: "Google authentication is temporarily unavailable",
			AR: "تم تعطيل مصادقة جوجل مؤقتًا",
		},
	}
)

// Verification-code failures.
var (
	ErrIncorrectCode = &Error{
		Kind:   "incorrect_code",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Incorrect verification code",
			AR: "كود التحقق غير صحيح",
		},
	}
	ErrExpiredCode = &Error{
		Kind:   "expired_code",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Verification code is expired",
			AR: "كود التحقق منتهي الصلاحيّة",
		},
	}
	ErrEmailAlreadyVerified = &Error{
		Kind:   "email_already_verified",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Your email is already verified",
			AR: "تم التحقق من بريدك الإلكتروني مسبقًا",
		},
	}
	ErrPhoneAlreadyVerified = &Error{
		Kind:   "phone_already_verified",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Your phone number is already verified",
			AR: "تم التحقق من رقم هاتفك مسبقًا",
		},
	}
	ErrAlreadyVerified = &Error{
		Kind:   "already_verified",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Account is already verified",
			AR: "تم التحقق من الحساب مسبقًا",
		},
	}
	ErrCodeResendThrottled = &Error{
		Kind:   "code_resend_throttled",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "Please wait before requesting a new verification code",
			AR: "يرجى الانتظار قبل طلب كود تحقق جديد",
		},
	}
)

// Password failures.
var (
	ErrIncorrectOldPassword = &Error{
		Kind:   "incorrect_old_password",
		Status: http.StatusUnauthorized,
		Message: Message{
			EN: "Old password is incorrect",
			AR: "كلمة المرور القديمة غير صحيحة",
		},
	}
	ErrOldPasswordMatchNew = &Error{
		Kind:   "old_password_match_new",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "New password matches old password",
			AR: "كلمة المرور الجديدة تطابق كلمة المرور القديمة",
		},
	}
)

// Profile failures.
var (
	ErrEmailUsed = &Error{
		Kind:   "email_used",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "Email address is already used",
			AR: "البريد الإلكتروني مستخدم مسبقًا",
		},
	}
	ErrPhoneUsed = &Error{
		Kind:   "phone_used",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "Phone number is already used",
			AR: "رقم الهاتف مستخدم مسبقًا",
		},
	}
	ErrNoChangesApplied = &Error{
		Kind:   "no_changes_applied",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "There's nothing to update",
			AR: "لا يوجد شيء للتحديث",
		},
	}
	ErrInvalidPhone = &Error{
		Kind:   "invalid_phone",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Invalid phone number",
			AR: "رقم الهاتف غير صالح",
		},
	}
	ErrInvalidEmail = &Error{
		Kind:   "invalid_email",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Invalid email address",
			AR: "البريد الإلكتروني غير صالح",
		},
	}
	ErrInvalidPassword = &Error{
		Kind:   "invalid_password",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Invalid password",
			AR: "كلمة المرور غير صالحة",
		},
	}
	ErrInvalidRole = &Error{
		Kind:   "invalid_role",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "Invalid account role",
			AR: "صلاحيّة الحساب غير صالحة",
		},
	}
)

// Notification failures.
var (
	ErrNoNotifications = &Error{
		Kind:   "no_notifications",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "You don't have any notifications",
			AR: "ليس لديك أي إشعارات",
		},
	}
	ErrNotificationsAlreadySeen = &Error{
		Kind:   "notifications_already_seen",
		Status: http.StatusBadRequest,
		Message: Message{
			EN: "All notifications are already seen",
			AR: "تمت مشاهدة جميع الإشعارات مسبقًا",
		},
	}
)

// Authorization and infrastructure failures.
var (
	ErrPermissionDenied = &Error{
		Kind:   "permission_denied",
		Status: http.StatusForbidden,
		Message: Message{
			EN: "You don't have enough rights",
			AR: "ليس لديك الصلاحيّات الكافية",
		},
	}
	ErrStaleAccount = &Error{
		Kind:   "stale_account",
		Status: http.StatusConflict,
		Message: Message{
			EN: "Account was modified concurrently, please retry",
			AR: "تم تعديل الحساب بشكل متزامن، يرجى المحاولة مجددًا",
		},
	}
	ErrServiceUnavailable = &Error{
		Kind:   "service_unavailable",
		Status: http.StatusInternalServerError,
		Message: Message{
			EN: "Service is temporarily unavailable",
			AR: "الخدمة غير متوفرة مؤقتًا",
		},
	}
)
