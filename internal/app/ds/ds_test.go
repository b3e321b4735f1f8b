package ds

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryStateNormalize(t *testing.T) {
	q := QueryState{Endpoint: "news"}.Normalize()
	assert.Equal(t, 1, q.Paging.Page)
	assert.Equal(t, DefaultItemsPerPage, q.Paging.ItemsPerPage)

	q = QueryState{Search: "x", Paging: PagingOptions{Page: 4, ItemsPerPage: 50}}.Normalize()
	assert.Equal(t, 4, q.Paging.Page)
	assert.Equal(t, 1, q.ResolvedPage())
}

func TestPagingOptionsSort(t *testing.T) {
	_, ok := PagingOptions{SortBy: []string{""}}.SortField()
	assert.False(t, ok)

	field, ok := PagingOptions{SortBy: []string{"name", "id"}}.SortField()
	assert.True(t, ok)
	assert.Equal(t, "name", field)

	_, ok = PagingOptions{}.Descending()
	assert.False(t, ok)
}

func TestSessionDataDecoding(t *testing.T) {
	var data SessionData
	raw := `{"user":{"id":7,"email":"a@b.c","locale":"km"},"permissions":["users.view",{"permission_slug":"roles.edit"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	want := []Permission{{Slug: "users.view"}, {Slug: "roles.edit"}}
	if diff := cmp.Diff(want, data.Permissions); diff != "" {
		t.Errorf("permissions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "7", data.User.Key())

	code, ok := data.User.StoredLanguage()
	assert.True(t, ok)
	assert.Equal(t, "km", code)

	clone := data.Clone()
	clone.Permissions[0].Slug = "changed"
	assert.Equal(t, "users.view", data.Permissions[0].Slug)
}

func TestUserKeyFallsBackToEmail(t *testing.T) {
	assert.Equal(t, "a@b.c", User{Email: "a@b.c"}.Key())
	assert.Equal(t, "a@b.c", User{ID: "", Email: "a@b.c"}.Key())
	assert.Empty(t, User{}.Key())
}

func TestUserKeyFormatsLargeIDs(t *testing.T) {
	var data SessionData
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":1000000}}`), &data))
	assert.Equal(t, "1000000", data.User.Key())

	assert.Equal(t, "12345678901", User{ID: float64(12345678901)}.Key())
	assert.Equal(t, "u-7", User{ID: "u-7"}.Key())
	assert.Equal(t, "42", User{ID: 42}.Key())
}

func TestNewPaginationInfo(t *testing.T) {
	assert.Equal(t, PaginationInfo{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, NewPaginationInfo(2, 10, 21))
	assert.Equal(t, 0, NewPaginationInfo(1, 10, 0).TotalPages)
}

func TestExportFormat(t *testing.T) {
	assert.Equal(t, "xlsx", ExportExcel.Extension())
	assert.Equal(t, "application/pdf", ExportPDF.MediaType())
	assert.Empty(t, ExportFormat("csv").Extension())
}

func TestSessionClaimsExpiresIn(t *testing.T) {
	now := time.Unix(1000, 0)
	claims := &SessionClaims{StandardClaims: jwt.StandardClaims{ExpiresAt: 1060}}
	assert.Equal(t, time.Minute, claims.ExpiresIn(now))

	var empty *SessionClaims
	assert.Zero(t, empty.ExpiresIn(now))
}
