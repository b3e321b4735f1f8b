package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/console"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newApp(t *testing.T) *console.Console {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer admin-token":
			w.Write([]byte(`{"user":{"id":1,"role":"Admin"},"permissions":["reports.view"]}`))
		case "Bearer editor-token":
			w.Write([]byte(`{"user":{"id":2,"role":"Editor"},"permissions":[]}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return console.New(&config.Config{APIBaseURL: srv.URL, DefaultLocale: "en", SessionTTL: time.Hour}, nil)
}

func newRouter(app *console.Console) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tables/:endpoint",
		AuthMiddleware(app),
		RequireRoleFor([]string{"users", "roles"}, "Admin"),
		RequirePermission(map[string][]string{"reports": {"reports.view"}}),
		func(c *gin.Context) {
			key, _ := GetUserKey(c)
			token, _ := GetToken(c)
			c.JSON(http.StatusOK, gin.H{"user": key, "token": token, "admin": sessionOf(c).IsAdmin()})
		})
	return r
}

func request(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := newRouter(newApp(t))

	assert.Equal(t, http.StatusUnauthorized, request(r, "/tables/news", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/tables/news", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/tables/news", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/tables/news", "Bearer unknown").Code)
}

func TestAuthMiddlewareAcceptsSession(t *testing.T) {
	w := request(newRouter(newApp(t)), "/tables/news", "Bearer editor-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"2","token":"editor-token","admin":false}`, w.Body.String())
}

func TestAuthMiddlewareBlacklistedToken(t *testing.T) {
	app := newApp(t)
	r := newRouter(app)
	assert.NoError(t, app.Blacklist(t.Context(), "admin-token"))

	w := request(r, "/tables/news", "Bearer admin-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is invalidated")
}

func TestRequireRoleFor(t *testing.T) {
	r := newRouter(newApp(t))

	assert.Equal(t, http.StatusForbidden, request(r, "/tables/users", "Bearer editor-token").Code)
	assert.Equal(t, http.StatusOK, request(r, "/tables/users", "Bearer admin-token").Code)
}

func TestRequirePermission(t *testing.T) {
	r := newRouter(newApp(t))

	assert.Equal(t, http.StatusForbidden, request(r, "/tables/reports", "Bearer editor-token").Code)
	assert.Equal(t, http.StatusOK, request(r, "/tables/reports", "Bearer admin-token").Code)
}
