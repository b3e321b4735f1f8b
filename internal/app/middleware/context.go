package middleware

import (
	"Admin-Console/internal/app/session"

	"github.com/gin-gonic/gin"
)

// GetSession возвращает сессию пользователя из контекста
func GetSession(c *gin.Context) (*session.Store, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	store, ok := value.(*session.Store)
	return store, ok
}

// GetToken возвращает bearer токен запроса
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}

// GetUserKey возвращает ключ пользователя для хранилищ шлюза. false, если ключа нет.
func GetUserKey(c *gin.Context) (string, bool) {
	user, ok := sessionOf(c).User()
	if !ok {
		return "", false
	}
	key := user.Key()
	return key, key != ""
}
