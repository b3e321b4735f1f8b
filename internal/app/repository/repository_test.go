package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"Admin-Console/internal/app/ds"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestNavigationLocationEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "view_navigations" WHERE user_key = $1 AND view = $2 ORDER BY id DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_key", "view", "query", "created_at"}))

	loc, err := NewNavigationRepository(db).Location(context.Background(), "u1", "users")
	require.NoError(t, err)
	assert.Empty(t, loc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNavigationLocationLatest(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "view_navigations" WHERE user_key = $1 AND view = $2 ORDER BY id DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_key", "view", "query", "created_at"}).
			AddRow(7, "u1", "users", "length=15&page=2", time.Now()))

	loc, err := NewNavigationRepository(db).ForUser("u1").Location(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"page": {"2"}, "length": {"15"}}, loc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNavigationNavigateInsertsRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "view_navigations"`)).
		WithArgs("u1", "users", "length=15&page=3", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := NewNavigationRepository(db).ForUser("u1").Navigate(context.Background(), "users", url.Values{"page": {"3"}, "length": {"15"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportListPagination(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "export_records" WHERE user_key = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "export_records" WHERE user_key = $1 ORDER BY id DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_key", "endpoint", "format", "file_name"}).
			AddRow(23, "u1", "users", "excel", "users.xlsx"))

	records, info, err := NewExportRepository(db, nil, "console-exports").List(context.Background(), "u1", 2, 100)
	require.NoError(t, err)

	assert.Len(t, records, 1)
	assert.Equal(t, ds.PaginationInfo{Page: 2, PageSize: 50, Total: 23, TotalPages: 1}, info)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportArchiveWithoutStorage(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := NewExportRepository(db, nil, "console-exports").
		ForUser("u1", "users", ds.ExportPDF).
		Save(context.Background(), &ds.Download{FileName: "users.pdf", Body: []byte("x")})

	assert.ErrorIs(t, err, ErrArchiveUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportRecordInsert(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "export_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	record := &ds.ExportRecord{UserKey: "u1", Endpoint: "users", Format: "excel", FileName: "users.xlsx"}
	require.NoError(t, NewExportRepository(db, nil, "b").Record(context.Background(), record))
	assert.EqualValues(t, 5, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// objectStore - S3-совместимый сервер в памяти, хватает для PutObject и RemoveObject
type objectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newObjectStore(t *testing.T) (*objectStore, *minio.Client) {
	t.Helper()
	store := &objectStore{objects: make(map[string][]byte)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store.mu.Lock()
		defer store.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			store.objects[r.URL.Path] = body
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			delete(store.objects, r.URL.Path)
			store.deleted = append(store.deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := minio.New(strings.TrimPrefix(srv.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return store, client
}

func TestArchiveSinkSavesObjectAndRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "export_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	store, client := newObjectStore(t)

	key, err := NewExportRepository(db, client, "console-exports").
		ForUser("u1", "/users", ds.ExportPDF).
		Save(context.Background(), &ds.Download{FileName: "Report.pdf", ContentType: "application/pdf", Body: []byte("%PDF")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "u1/"))
	assert.True(t, strings.HasSuffix(key, "_report.pdf"))
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Contains(t, store.objects, "/console-exports/"+key)
	assert.Empty(t, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRemovesObjectWhenRecordFails(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "export_records"`)).
		WillReturnError(errors.New("connection reset"))
	store, client := newObjectStore(t)

	_, err := NewExportRepository(db, client, "console-exports").
		Archive(context.Background(), "u1", "users", ds.ExportExcel, &ds.Download{FileName: "users.xlsx", Body: []byte("xlsx")})
	require.Error(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.objects)
	require.Len(t, store.deleted, 1)
	assert.True(t, strings.HasPrefix(store.deleted[0], "/console-exports/u1/"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
