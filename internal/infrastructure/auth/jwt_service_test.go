package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

func createJWTServiceForTest(t *testing.T) domain.TokenService {
	t.Helper()
	return NewJWTService("test-secret", "accountsvc-test", "test-salt")
}

func jwtTestAccount() *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Phone:        domain.Phone{ICC: "+1", NSN: "5551234"},
		PasswordHash: "bcrypt-hash-v1",
	}
}

func TestJWTServiceImpl_GenerateAndParse(t *testing.T) {
	svc := createJWTServiceForTest(t)
	account := jwtTestAccount()

	token, err := svc.Generate(account)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.AccountID != account.ID {
		t.Errorf("AccountID = %v, want %v", claims.AccountID, account.ID)
	}
	if claims.Email != account.Email {
		t.Errorf("Email = %q, want %q", claims.Email, account.Email)
	}
	if claims.Phone != "+15551234" {
		t.Errorf("Phone = %q, want composed number", claims.Phone)
	}
	if claims.PasswordDigest != svc.Digest(account.PasswordHash) {
		t.Errorf("PasswordDigest does not re-derive from the hash")
	}
}

func TestJWTServiceImpl_Parse_Invalid(t *testing.T) {
	svc := createJWTServiceForTest(t)
	account := jwtTestAccount()

	good, err := svc.Generate(account)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong secret", mustGenerate(t, NewJWTService("other-secret", "accountsvc-test", "test-salt"), account)},
		{"truncated", good[:len(good)-5]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Parse(tt.token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTServiceImpl_Digest_RotationInvalidates(t *testing.T) {
	svc := createJWTServiceForTest(t)
	account := jwtTestAccount()

	token, err := svc.Generate(account)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// The signature stays valid after a password change. The caller's
	// digest comparison is what actually revokes the token.
	if claims.PasswordDigest != svc.Digest("bcrypt-hash-v1") {
		t.Error("digest mismatch before rotation")
	}
	if claims.PasswordDigest == svc.Digest("bcrypt-hash-v2") {
		t.Error("digest unchanged across password rotation")
	}
}

func TestJWTServiceImpl_Digest_SaltMatters(t *testing.T) {
	a := NewJWTService("secret", "iss", "salt-a")
	b := NewJWTService("secret", "iss", "salt-b")

	if a.Digest("hash") == b.Digest("hash") {
		t.Error("different salts produced the same digest")
	}
	if a.Digest("hash") != a.Digest("hash") {
		t.Error("digest not deterministic")
	}
}

func mustGenerate(t *testing.T, svc domain.TokenService, account *domain.Account) string {
	t.Helper()
	token, err := svc.Generate(account)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return token
}
