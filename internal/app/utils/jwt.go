package utils

import (
	"Admin-Console/internal/app/ds"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrOpaqueToken - токен не является JWT, утверждения прочитать нельзя
var ErrOpaqueToken = errors.New("token is not a JWT")

// GenerateSessionToken подписывает токен сессии (используется тестами и локальным стендом)
func GenerateSessionToken(subject, role, secret string, expiresIn time.Duration) (string, error) {
	claims := ds.SessionClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(expiresIn).Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    "admin-console",
			Subject:   subject,
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken читает утверждения токена провайдера аутентификации.
// Без секрета подпись не проверяется, а непрозрачный токен дает ErrOpaqueToken.
func ParseSessionToken(tokenString, secret string) (*ds.SessionClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	if secret == "" {
		claims := &ds.SessionClaims{}
		if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrOpaqueToken
		}
		if err := claims.Valid(); err != nil {
			return nil, err
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ds.SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// TokenTTL - сколько хранить данные, связанные с токеном
func TokenTTL(claims *ds.SessionClaims, fallback time.Duration) time.Duration {
	if ttl := claims.ExpiresIn(time.Now()); ttl > 0 {
		return ttl
	}
	return fallback
}
