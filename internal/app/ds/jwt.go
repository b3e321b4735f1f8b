package ds

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionClaims - утверждения токена, выданного провайдером аутентификации
type SessionClaims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

// ExpiresIn возвращает оставшееся время жизни токена (0 если срок не задан)
func (c *SessionClaims) ExpiresIn(now time.Time) time.Duration {
	if c == nil || c.ExpiresAt == 0 {
		return 0
	}
	return time.Unix(c.ExpiresAt, 0).Sub(now)
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}
