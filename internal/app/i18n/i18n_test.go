package i18n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	puts         atomic.Int32
	translations atomic.Int32
	lastBody     atomic.Value
	failPut      bool
	delay        time.Duration
}

func (b *fakeBackend) client(t *testing.T) *apiclient.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /user/language", func(w http.ResponseWriter, r *http.Request) {
		b.puts.Add(1)
		var body ds.LanguageUpdate
		json.NewDecoder(r.Body).Decode(&body)
		b.lastBody.Store(body)
		if b.failPut {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /translations/{locale}", func(w http.ResponseWriter, r *http.Request) {
		b.translations.Add(1)
		time.Sleep(10*time.Millisecond + b.delay)
		switch r.PathValue("locale") {
		case "km":
			w.Write([]byte(`{"menu":{"users":"អ្នកប្រើប្រាស់"},"greeting":"សួស្តី %s"}`))
		case "en":
			w.Write([]byte(`{"menu":{"users":"Users","count":3},"greeting":"Hello %s"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL)
}

func newAuthenticated(language string) *session.Store {
	store := session.NewStore()
	store.Authenticate("tok", &ds.SessionData{User: ds.User{ID: 1, Language: language}})
	return store
}

func TestSetLanguageRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	store := newAuthenticated("")
	r := NewResolver(store, NewActiveLocale(DefaultCode), backend.client(t))

	require.NoError(t, r.SetLanguage(context.Background(), "km", true))
	assert.Equal(t, "km", r.GetCurrentLanguage().Code)
	assert.Equal(t, "km", r.GetCurrentUserLanguage())
	assert.EqualValues(t, 1, backend.puts.Load())
	assert.Equal(t, ds.LanguageUpdate{Language: "km"}, backend.lastBody.Load())
}

func TestSetLanguageUnsupportedFallsBackToEnglish(t *testing.T) {
	backend := &fakeBackend{}
	store := newAuthenticated("km")
	locale := NewActiveLocale("km")
	r := NewResolver(store, locale, backend.client(t))

	require.NoError(t, r.SetLanguage(context.Background(), "xx", true))
	assert.Equal(t, "en", locale.Code())
	assert.Equal(t, ds.LanguageUpdate{Language: "en"}, backend.lastBody.Load())
}

func TestSetLanguageWithoutPersistMakesNoRequest(t *testing.T) {
	backend := &fakeBackend{}
	r := NewResolver(newAuthenticated(""), NewActiveLocale(DefaultCode), backend.client(t))

	require.NoError(t, r.SetLanguage(context.Background(), "km", false))
	assert.Zero(t, backend.puts.Load())
	assert.Equal(t, "en", r.GetCurrentUserLanguage())
}

func TestUpdateUserLanguageUnauthenticatedIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	store := session.NewStore()
	r := NewResolver(store, NewActiveLocale(DefaultCode), backend.client(t))

	require.NoError(t, r.UpdateUserLanguage(context.Background(), "km"))
	assert.Zero(t, backend.puts.Load())
	assert.Equal(t, DefaultCode, r.GetCurrentUserLanguage())
}

func TestUpdateUserLanguageFailureKeepsSession(t *testing.T) {
	backend := &fakeBackend{failPut: true}
	store := newAuthenticated("en")
	r := NewResolver(store, NewActiveLocale(DefaultCode), backend.client(t))

	err := r.UpdateUserLanguage(context.Background(), "km")
	require.Error(t, err)
	user, _ := store.User()
	assert.Equal(t, "en", user.Language)
}

func TestGetCurrentUserLanguageFieldPriority(t *testing.T) {
	store := session.NewStore()
	store.Authenticate("tok", &ds.SessionData{User: ds.User{Locale: "km", Lang: "en"}})
	r := NewResolver(store, NewActiveLocale(DefaultCode), nil)
	assert.Equal(t, "km", r.GetCurrentUserLanguage())

	store.Authenticate("tok", &ds.SessionData{User: ds.User{PreferredLanguage: "km"}})
	assert.Equal(t, "km", r.GetCurrentUserLanguage())
}

func TestGetCurrentUserLanguageRecoversFromPanic(t *testing.T) {
	r := &Resolver{}
	assert.Equal(t, DefaultCode, r.GetCurrentUserLanguage())
}

func TestAvailableLanguagesAreStatic(t *testing.T) {
	first := GetAvailableLanguages()
	first[0].Code = "mutated"

	assert.Equal(t, []ds.Language{
		{Code: "en", Name: "English", NativeName: "English"},
		{Code: "km", Name: "Khmer", NativeName: "ខ្មែរ"},
	}, GetAvailableLanguages())
}

func TestGetCurrentLanguageFallsBackToFirst(t *testing.T) {
	locale := NewActiveLocale(DefaultCode)
	locale.Set("zh")
	r := NewResolver(session.NewStore(), locale, nil)
	assert.Equal(t, "en", r.GetCurrentLanguage().Code)
}

func TestInitialLocale(t *testing.T) {
	r := NewResolver(newAuthenticated("km"), NewActiveLocale(DefaultCode), nil)
	assert.Equal(t, "km", r.InitialLocale("en-US"))

	r = NewResolver(newAuthenticated("fr"), NewActiveLocale(DefaultCode), nil)
	assert.Equal(t, "en", r.InitialLocale("km-KH"))

	r = NewResolver(session.NewStore(), NewActiveLocale(DefaultCode), nil)
	assert.Equal(t, "km", r.InitialLocale("km-KH,km;q=0.9,en;q=0.5"))
	assert.Equal(t, "en", r.InitialLocale("fr-FR"))
}

func TestCatalogLoadsEachLocaleOnce(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCatalog(backend.client(t))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Load(context.Background(), "km"))
		}()
	}
	wg.Wait()
	require.NoError(t, c.Load(context.Background(), "km"))

	assert.EqualValues(t, 1, backend.translations.Load())
	assert.Equal(t, "អ្នកប្រើប្រាស់", c.T("km", "menu.users"))
	assert.Equal(t, "missing.key", c.T("km", "missing.key"))
}

func TestCatalogLoadsDistinctLocalesSeparately(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCatalog(backend.client(t))

	require.NoError(t, c.Load(context.Background(), "en"))
	require.NoError(t, c.Load(context.Background(), "km"))
	require.NoError(t, c.Load(context.Background(), "en"))

	assert.EqualValues(t, 2, backend.translations.Load())
	assert.Equal(t, "Users", c.T("en", "menu.users"))
	assert.Equal(t, "អ្នកប្រើប្រាស់", c.T("km", "menu.users"))
}

func TestCatalogCanceledCallerDoesNotFailOthers(t *testing.T) {
	backend := &fakeBackend{delay: 100 * time.Millisecond}
	c := NewCatalog(backend.client(t))

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	errA := make(chan error, 1)
	go func() { errA <- c.Load(ctxA, "km") }()
	time.Sleep(5 * time.Millisecond)

	errB := make(chan error, 1)
	go func() { errB <- c.Load(context.Background(), "km") }()

	time.Sleep(20 * time.Millisecond)
	cancelA()

	assert.ErrorIs(t, <-errA, context.Canceled)
	require.NoError(t, <-errB)
	assert.True(t, c.Loaded("km"))
	assert.EqualValues(t, 1, backend.translations.Load())
}

func TestCatalogFailedLoadIsRetried(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCatalog(backend.client(t))

	require.Error(t, c.Load(context.Background(), "xx"))
	require.Error(t, c.Load(context.Background(), "xx"))
	assert.False(t, c.Loaded("xx"))
	assert.EqualValues(t, 2, backend.translations.Load())
}

func TestCatalogFormatsArguments(t *testing.T) {
	c := NewCatalog((&fakeBackend{}).client(t))
	require.NoError(t, c.Load(context.Background(), "en"))

	assert.Equal(t, "Hello Dara", c.T("en", "greeting", "Dara"))
	msgs, ok := c.Messages("en")
	require.True(t, ok)
	assert.Equal(t, "3", msgs["menu.count"])
}

func TestCatalogWatchLoadsOnChange(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCatalog(backend.client(t))
	locale := NewActiveLocale("en")

	stop := c.Watch(context.Background(), locale)
	defer stop()

	require.Eventually(t, func() bool { return c.Loaded("en") }, time.Second, 5*time.Millisecond)
	locale.Set("km")
	require.Eventually(t, func() bool { return c.Loaded("km") }, time.Second, 5*time.Millisecond)

	locale.Set("en")
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 2, backend.translations.Load())
}

func fastInitializer(r *Resolver) *Initializer {
	in := NewInitializer(r)
	in.InitialInterval = 5 * time.Millisecond
	in.MaxInterval = 20 * time.Millisecond
	return in
}

func TestInitializerAppliesOnReady(t *testing.T) {
	store := session.NewStore()
	locale := NewActiveLocale(DefaultCode)
	in := NewInitializer(NewResolver(store, locale, nil))

	go func() {
		time.Sleep(10 * time.Millisecond)
		store.Authenticate("tok", &ds.SessionData{User: ds.User{Language: "km"}})
	}()

	start := time.Now()
	changed, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "km", locale.Code())
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestInitializerKeepsDefaultWithoutAuthentication(t *testing.T) {
	locale := NewActiveLocale(DefaultCode)
	changed, err := fastInitializer(NewResolver(session.NewStore(), locale, nil)).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, DefaultCode, locale.Code())
}

func TestInitializerSkipsMatchingLocale(t *testing.T) {
	locale := NewActiveLocale("km")
	changed, err := fastInitializer(NewResolver(newAuthenticated("km"), locale, nil)).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestInitializerAcceptsCatalogLocale(t *testing.T) {
	locale := NewActiveLocale(DefaultCode)
	changed, err := fastInitializer(NewResolver(newAuthenticated("zh"), locale, nil)).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "zh", locale.Code())

	locale = NewActiveLocale("km")
	changed, err = fastInitializer(NewResolver(newAuthenticated("fr"), locale, nil)).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, DefaultCode, locale.Code())
}

func TestInitializerStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInitializer(NewResolver(session.NewStore(), NewActiveLocale(DefaultCode), nil)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectScript(t *testing.T) {
	assert.Equal(t, FontKhmer, DetectScript("សួស្តី"))
	assert.Equal(t, FontSans, DetectScript("Hello"))
	assert.Equal(t, FontSans, DetectScript(""))
	assert.Equal(t, "km", DetectLanguage("Hello សួស្តី 你好"))
	assert.Equal(t, "zh", DetectLanguage("你好"))
	assert.Contains(t, FontFamily("km"), "Kantumruy Pro")
	assert.Equal(t, FontFamily("en"), FontFamily("zh"))
}

func TestPick(t *testing.T) {
	values := map[string]string{"en": "Users", "km": "អ្នកប្រើប្រាស់"}
	assert.Equal(t, "អ្នកប្រើប្រាស់", Pick(values, "km"))
	assert.Equal(t, "Users", Pick(values, "zh"))
	assert.Equal(t, "", Pick(nil, "en"))
}

func TestNegotiate(t *testing.T) {
	code, ok := Negotiate("km-KH")
	assert.True(t, ok)
	assert.Equal(t, "km", code)

	code, ok = Negotiate("en-GB,en;q=0.8")
	assert.True(t, ok)
	assert.Equal(t, "en", code)

	_, ok = Negotiate("")
	assert.False(t, ok)
}
