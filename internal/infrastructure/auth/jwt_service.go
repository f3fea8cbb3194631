package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// JWTServiceImpl implements domain.TokenService. Tokens bind the account
// id, email, phone and a salted digest of the password hash current at
// issuance. Validation callers must compare the digest against the stored
// hash, so rotating the password implicitly revokes every token minted
// before the rotation.
type JWTServiceImpl struct {
	secretKey    []byte
	issuer       string
	passwordSalt string
}

// NewJWTService creates a new JWT service.
func NewJWTService(secretKey, issuer, passwordSalt string) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:    []byte(secretKey),
		issuer:       issuer,
		passwordSalt: passwordSalt,
	}
}

// Digest implements domain.TokenService.
func (j *JWTServiceImpl) Digest(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash + j.passwordSalt))
	return hex.EncodeToString(sum[:])
}

// Generate implements domain.TokenService.
func (j *JWTServiceImpl) Generate(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID.String(),
		"email": account.Email,
		"phone": account.Phone.Full(),
		"pwd":   j.Digest(account.PasswordHash),
		"iss":   j.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Parse implements domain.TokenService. It checks the signature and shape
// only; the caller owns the digest comparison against the current account.
func (j *JWTServiceImpl) Parse(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	phone, ok := claims["phone"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	digest, ok := claims["pwd"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	return &domain.SessionClaims{
		AccountID:      accountID,
		Email:          email,
		Phone:          phone,
		PasswordDigest: digest,
	}, nil
}
