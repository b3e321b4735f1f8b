package middleware

import (
	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/session"
	"Admin-Console/internal/app/utils"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jwtPrefix = "Bearer "

	sessionKey = "session"
	tokenKey   = "token"
)

// AuthMiddleware проверяет bearer токен и кладет сессию пользователя в контекст
func AuthMiddleware(app *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Получаем заголовок Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Проверяем формат Bearer токена
		if !strings.HasPrefix(authHeader, jwtPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		// Извлекаем токен
		tokenString := strings.TrimPrefix(authHeader, jwtPrefix)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is empty"})
			c.Abort()
			return
		}

		// Проверяем токен в blacklist
		inBlacklist, err := app.Blacklisted(c.Request.Context(), tokenString)
		if err != nil {
			logrus.Error("Failed to check token in blacklist: ", err)
		} else if inBlacklist {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalidated"})
			c.Abort()
			return
		}

		// Непрозрачные токены проверяет только провайдер
		if _, err := utils.ParseSessionToken(tokenString, app.Config().JWTSecret); err != nil && !errors.Is(err, utils.ErrOpaqueToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		store, err := app.Session(c.Request.Context(), tokenString, c.GetHeader("Accept-Language"))
		if err != nil {
			logrus.Debugf("Session restore failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
			c.Abort()
			return
		}

		// Добавляем сессию в контекст
		c.Set(sessionKey, store)
		c.Set(tokenKey, tokenString)
		c.Request = c.Request.WithContext(apiclient.ContextWithToken(c.Request.Context(), tokenString))

		user, _ := store.User()
		logrus.Debugf("User authenticated: %s (role: %s)", user.Key(), user.Role)

		c.Next()
	}
}

// RequireRoleFor ограничивает таблицы endpoints указанными ролями. Super Admin проходит всегда.
func RequireRoleFor(endpoints []string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(endpoints, strings.Trim(c.Param("endpoint"), "/")) {
			c.Next()
			return
		}

		store, exists := GetSession(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		snap := store.Snapshot()
		if !snap.IsSuperAdmin() && (len(roles) == 0 || !snap.HasAnyRole(roles)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePermission проверяет права, заданные для таблицы в конфигурации
func RequirePermission(permissions map[string][]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		required := permissions[strings.Trim(c.Param("endpoint"), "/")]
		if len(required) == 0 {
			c.Next()
			return
		}

		store, exists := GetSession(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		snap := store.Snapshot()
		if !snap.IsSuperAdmin() && !snap.HasPermission(required...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// sessionOf - сессия из контекста или пустая
func sessionOf(c *gin.Context) session.Session {
	store, ok := GetSession(c)
	if !ok {
		return session.Session{Status: session.StatusUnauthenticated}
	}
	return store.Snapshot()
}
