package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/models"
)

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"isAdmin"`
	Verified bool      `json:"verified"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user.
// The exp claim is only set when cfg.AccessTokenTTL is positive.
func GenerateToken(user *models.User, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		ID:       user.ID,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		Verified: user.Verified,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if cfg.AccessTokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		if claims.ID == uuid.Nil {
			return nil, errors.New("token has no user id")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}
