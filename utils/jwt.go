package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "foodcourt"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRevokedToken = errors.New("token has been revoked")
)

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens and remembers revoked ones.
type TokenIssuer struct {
	secret  []byte
	ttl     time.Duration
	revoked *Blacklist
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: NewBlacklist(),
	}
}

func (ti *TokenIssuer) GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

func (ti *TokenIssuer) ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if ti.revoked.Contains(claims.ID) {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke blacklists the token until it would have expired anyway.
func (ti *TokenIssuer) Revoke(claims *CustomClaims) {
	expiry := time.Now().Add(ti.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	ti.revoked.Add(claims.ID, expiry)
}

// PruneRevoked forgets revoked tokens that have expired anyway.
func (ti *TokenIssuer) PruneRevoked() int {
	return ti.revoked.Cleanup()
}
