package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("token secret is empty")
)

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	UserID uint
	Role   string
}

func CreateAccessToken(userID uint, role string, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func ParseAccessToken(requestToken string, secret string) (TokenClaims, error) {
	if secret == "" {
		return TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, ErrEmptySecret)
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(requestToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	if exp, ok := claims["exp"].(float64); !ok || float64(time.Now().Unix()) > exp {
		return TokenClaims{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return TokenClaims{}, fmt.Errorf("%w: missing id", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)

	return TokenClaims{UserID: uint(id), Role: role}, nil
}
