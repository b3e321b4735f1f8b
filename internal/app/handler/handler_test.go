package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	listQuery    atomic.Value
	languagePuts atomic.Int32
}

func newGateway(t *testing.T, b *backend) *gin.Engine {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req ds.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"data":{"access_token":"good"}}`))
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /auth/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":{"user":{"id":5,"role":"Editor"},"permissions":["news.view"]}}`))
	})
	mux.HandleFunc("GET /news", func(w http.ResponseWriter, r *http.Request) {
		b.listQuery.Store(r.URL.Query())
		w.Write([]byte(`{"data":[{"id":1,"title":"b"},{"id":2,"title":"a"}],"meta":{"total":2},"total_sum":[10]}`))
	})
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /news/export/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	})
	mux.HandleFunc("PUT /user/language", func(w http.ResponseWriter, r *http.Request) {
		b.languagePuts.Add(1)
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /translations/{locale}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nav":{"news":"News ` + r.PathValue("locale") + `"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	app := console.New(&config.Config{
		APIBaseURL:     srv.URL,
		DefaultLocale:  "en",
		SessionTTL:     time.Hour,
		RequestTimeout: 5 * time.Second,
		AdminEndpoints: []string{"users", "roles"},
	}, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterHandlers(router, app)
	return router
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetTable(t *testing.T) {
	b := &backend{}
	r := newGateway(t, b)

	w := do(r, http.MethodGet, `/api/tables/news?page=2&per_page=50&filter=%7B%22status%22%3A1%7D&sortBy=title&sortDesc=false`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ds.TableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "a", resp.Items[0]["title"])
	assert.Equal(t, "/news?filter=%7B%22status%22%3A1%7D&length=50&page=2", resp.Location)
	assert.Empty(t, resp.Error)

	query := b.listQuery.Load().(url.Values)
	assert.Equal(t, []string{"2"}, query["page"])
	assert.Equal(t, []string{`{"status":1}`}, query["filter"])
}

func TestGetTableDegradesOnFailure(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/tables/broken", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ds.TableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.TotalSum)
	assert.NotEmpty(t, resp.Error)
}

func TestGetTableBadFilter(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/tables/news?filter=%7Bbroken", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminTableForbidden(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/tables/users", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportTable(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/tables/news/export/pdf?file_name=report", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestExportTableUnknownFormat(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/tables/news/export/csv", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportsWithoutDatabase(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/exports", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLanguages(t *testing.T) {
	r := newGateway(t, &backend{})

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var langs []ds.Language
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &langs))
	require.Len(t, langs, 2)
	assert.Equal(t, "km", langs[1].Code)
}

func TestFontClass(t *testing.T) {
	r := newGateway(t, &backend{})

	req := httptest.NewRequest(http.MethodGet, "/api/font-class?text=%E1%9E%81%E1%9F%92%E1%9E%98%E1%9F%82%E1%9E%9A", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"font_class":"font-khmer"`)
	assert.Contains(t, w.Body.String(), `"language":"km"`)
}

func TestUpdateLanguage(t *testing.T) {
	b := &backend{}
	r := newGateway(t, b)

	w := do(r, http.MethodPut, "/api/language", `{"language":"km"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"km"`)
	assert.EqualValues(t, 1, b.languagePuts.Load())

	// Локаль запоминается для следующих запросов пользователя
	w = do(r, http.MethodGet, "/api/language", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"km"`)

	w = do(r, http.MethodPut, "/api/language", `{"language":"fr","persist":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"en"`)
	assert.EqualValues(t, 1, b.languagePuts.Load())
}

func TestGetTranslations(t *testing.T) {
	r := newGateway(t, &backend{})

	w := do(r, http.MethodGet, "/api/translations/zh", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"nav.news":"News zh"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/translations/fr", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenu(t *testing.T) {
	w := do(newGateway(t, &backend{}), http.MethodGet, "/api/menu", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"title":"News en"`)
	assert.NotContains(t, body, `"/users"`)
	assert.NotContains(t, body, `"/support"`)
}

func TestLoginAndLogout(t *testing.T) {
	r := newGateway(t, &backend{})

	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"good"`)

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/menu", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
