package console

import (
	"context"
	"errors"
	"time"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/auth"
	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/export"
	"Admin-Console/internal/app/i18n"
	"Admin-Console/internal/app/listfetch"
	"Admin-Console/internal/app/redis"
	"Admin-Console/internal/app/repository"
	"Admin-Console/internal/app/session"
	"Admin-Console/internal/app/utils"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/sirupsen/logrus"
)

type cachedSession struct {
	data    *ds.SessionData
	expires time.Time
}

// Console связывает клиент бэкенда, кэши сессий и хранилища шлюза
type Console struct {
	cfg     *config.Config
	client  *apiclient.Client
	auth    *auth.Authenticator
	catalog *i18n.Catalog
	repo    *repository.Repository

	// Без Redis сессии и черный список живут в памяти процесса
	sessions  *xsync.Map[string, cachedSession]
	blacklist *xsync.Map[string, time.Time]
	locales   *xsync.Map[string, string]
	navs      *xsync.Map[string, *listfetch.MemoryNavigator]
}

// New создает консоль. repo может быть nil, тогда используется только память.
func New(cfg *config.Config, repo *repository.Repository) *Console {
	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.RequestTimeout))
	return &Console{
		cfg:       cfg,
		client:    client,
		auth:      auth.New(client),
		catalog:   i18n.NewCatalog(client),
		repo:      repo,
		sessions:  xsync.NewMap[string, cachedSession](),
		blacklist: xsync.NewMap[string, time.Time](),
		locales:   xsync.NewMap[string, string](),
		navs:      xsync.NewMap[string, *listfetch.MemoryNavigator](),
	}
}

func (c *Console) Config() *config.Config {
	return c.cfg
}

func (c *Console) Catalog() *i18n.Catalog {
	return c.catalog
}

func (c *Console) Auth() *auth.Authenticator {
	return c.auth
}

func (c *Console) redis() *redis.Client {
	if c.repo == nil {
		return nil
	}
	return c.repo.GetRedisClient()
}

func (c *Console) ttl(token string) time.Duration {
	claims, err := utils.ParseSessionToken(token, c.cfg.JWTSecret)
	if err != nil {
		return c.cfg.SessionTTL
	}
	return utils.TokenTTL(claims, c.cfg.SessionTTL)
}

// Session восстанавливает сессию по токену: сначала из кэша, затем через /auth/info.
// Активная локаль берется из прошлых запросов пользователя или из профиля и браузера.
func (c *Console) Session(ctx context.Context, token, acceptLanguage string) (*session.Store, error) {
	store := session.NewStore()

	if data, ok := c.cachedSession(ctx, token); ok {
		store.Authenticate(token, data)
	} else {
		if err := c.auth.Restore(ctx, store, token); err != nil {
			return nil, err
		}
		c.SaveSession(ctx, token, store.Snapshot().Data)
	}

	user, _ := store.User()
	if code, ok := c.rememberedLocale(user.Key()); ok {
		store.SetActiveLocale(code)
	} else {
		resolver := i18n.NewResolver(store, i18n.NewActiveLocale(c.cfg.DefaultLocale), c.client)
		store.SetActiveLocale(resolver.InitialLocale(acceptLanguage))
	}
	return store, nil
}

func (c *Console) rememberedLocale(userKey string) (string, bool) {
	if userKey == "" {
		return "", false
	}
	return c.locales.Load(userKey)
}

func (c *Console) cachedSession(ctx context.Context, token string) (*ds.SessionData, bool) {
	if rc := c.redis(); rc != nil {
		data, err := rc.GetSession(ctx, token)
		if err == nil {
			return data, true
		}
		if !errors.Is(err, redis.ErrNotFound) {
			logrus.Warnf("Session cache read failed: %v", err)
		}
		return nil, false
	}

	cached, ok := c.sessions.Load(token)
	if !ok || time.Now().After(cached.expires) {
		c.sessions.Delete(token)
		return nil, false
	}
	return cached.data.Clone(), true
}

// SaveSession кэширует данные сессии на время жизни токена
func (c *Console) SaveSession(ctx context.Context, token string, data *ds.SessionData) {
	if data == nil {
		return
	}
	ttl := c.ttl(token)
	if rc := c.redis(); rc != nil {
		if err := rc.SaveSession(ctx, token, data, ttl); err != nil {
			logrus.Warnf("Session cache write failed: %v", err)
		}
		return
	}
	c.sessions.Store(token, cachedSession{data: data.Clone(), expires: time.Now().Add(ttl)})
}

func (c *Console) DropSession(ctx context.Context, token string) {
	if rc := c.redis(); rc != nil {
		if err := rc.DeleteSession(ctx, token); err != nil {
			logrus.Warnf("Session cache delete failed: %v", err)
		}
		return
	}
	c.sessions.Delete(token)
}

// Blacklisted проверяет, отозван ли токен
func (c *Console) Blacklisted(ctx context.Context, token string) (bool, error) {
	if rc := c.redis(); rc != nil {
		return rc.IsInBlacklist(ctx, token)
	}
	expires, ok := c.blacklist.Load(token)
	if !ok {
		return false, nil
	}
	if time.Now().After(expires) {
		c.blacklist.Delete(token)
		return false, nil
	}
	return true, nil
}

// Blacklist отзывает токен до конца его жизни
func (c *Console) Blacklist(ctx context.Context, token string) error {
	ttl := c.ttl(token)
	if rc := c.redis(); rc != nil {
		return rc.AddToBlacklist(ctx, token, ttl)
	}
	c.blacklist.Store(token, time.Now().Add(ttl))
	return nil
}

// SignIn получает токен у провайдера аутентификации
func (c *Console) SignIn(ctx context.Context, req ds.LoginRequest) (*ds.TokenResponse, error) {
	return c.auth.SignIn(ctx, req)
}

// SignOut завершает сессию у провайдера и отзывает токен локально
func (c *Console) SignOut(ctx context.Context, token string) error {
	if err := c.auth.SignOut(apiclient.ContextWithToken(ctx, token)); err != nil {
		logrus.Warnf("Provider sign out failed: %v", err)
	}
	c.DropSession(ctx, token)
	return c.Blacklist(ctx, token)
}

// Language возвращает резолвер языка для сессии запроса. Смена локали запоминается
// для пользователя и запускает загрузку каталога.
func (c *Console) Language(ctx context.Context, store *session.Store) *i18n.Resolver {
	locale := i18n.NewActiveLocale(store.ActiveLocale())
	user, _ := store.User()
	userKey := user.Key()

	locale.Subscribe(func(code string) {
		store.SetActiveLocale(code)
		// Пользователей без ключа не различить, их локаль не запоминается
		if userKey != "" {
			c.locales.Store(userKey, code)
		}
	})
	c.catalog.Watch(context.WithoutCancel(ctx), locale)

	return i18n.NewResolver(store, locale, c.client)
}

// RememberSession обновляет кэш после изменения сессии (например, языка профиля)
func (c *Console) RememberSession(ctx context.Context, store *session.Store) {
	snap := store.Snapshot()
	if snap.Authenticated() {
		c.SaveSession(ctx, snap.Token, snap.Data)
	}
}

// Fetcher - загрузчик списков с историей навигации пользователя.
// Без ключа пользователя история живет только в пределах запроса.
func (c *Console) Fetcher(userKey string) *listfetch.Fetcher {
	if userKey == "" {
		return listfetch.NewFetcher(c.client, listfetch.NewMemoryNavigator())
	}
	if c.repo != nil {
		return listfetch.NewFetcher(c.client, c.repo.Navigation.ForUser(userKey))
	}
	nav, _ := c.navs.LoadOrCompute(userKey, func() (*listfetch.MemoryNavigator, bool) {
		return listfetch.NewMemoryNavigator(), false
	})
	return listfetch.NewFetcher(c.client, nav)
}

func (c *Console) Exporter() *export.Exporter {
	return export.NewExporter(c.client)
}

// Archive - приемник для архива выгрузок, nil если нет хранилища или ключа пользователя
func (c *Console) Archive(userKey, endpoint string, format ds.ExportFormat) export.Sink {
	if c.repo == nil || userKey == "" {
		return nil
	}
	return c.repo.Export.ForUser(userKey, endpoint, format)
}

// Exports - история выгрузок, nil если базы нет
func (c *Console) Exports() *repository.ExportRepository {
	if c.repo == nil {
		return nil
	}
	return c.repo.Export
}
