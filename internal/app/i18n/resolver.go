package i18n

import (
	"context"
	"fmt"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/session"

	"github.com/sirupsen/logrus"
)

// Putter - часть apiclient.Client для сохранения языка в профиле
type Putter interface {
	PutJSON(ctx context.Context, path string, body, out any) error
}

// Resolver определяет язык пользователя и переключает его
type Resolver struct {
	session *session.Store
	locale  *ActiveLocale
	client  Putter
}

func NewResolver(store *session.Store, locale *ActiveLocale, client Putter) *Resolver {
	return &Resolver{session: store, locale: locale, client: client}
}

func (r *Resolver) Locale() *ActiveLocale {
	return r.locale
}

// GetCurrentUserLanguage - сохраненный язык аутентифицированного пользователя или язык по умолчанию
func (r *Resolver) GetCurrentUserLanguage() (code string) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.Warnf("Error getting current user language: %v", rec)
			code = DefaultCode
		}
	}()

	snap := r.session.Snapshot()
	if !snap.Authenticated() {
		return DefaultCode
	}
	user, ok := snap.User()
	if !ok {
		return DefaultCode
	}
	if stored, ok := user.StoredLanguage(); ok {
		return stored
	}
	return DefaultCode
}

// UpdateUserLanguage сохраняет язык в профиле. Без аутентификации ничего не делает.
func (r *Resolver) UpdateUserLanguage(ctx context.Context, code string) error {
	if !r.session.Authenticated() {
		logrus.Warn("Auth not available for language update")
		return nil
	}

	if _, ok := apiclient.TokenFromContext(ctx); !ok {
		ctx = apiclient.ContextWithToken(ctx, r.session.Token())
	}

	if err := r.client.PutJSON(ctx, "user/language", ds.LanguageUpdate{Language: code}, nil); err != nil {
		logrus.Errorf("Failed to update user language preference: %v", err)
		return fmt.Errorf("update user language: %w", err)
	}

	if err := r.session.SetUserLanguage(code); err != nil {
		return fmt.Errorf("update user language: %w", err)
	}

	logrus.Infof("User language preference updated to: %s", code)
	return nil
}

// SetLanguage переключает активную локаль. Неподдерживаемый код заменяется на en.
func (r *Resolver) SetLanguage(ctx context.Context, code string, persist bool) error {
	if !IsSupported(code) {
		logrus.Warnf("Unsupported language: %s, defaulting to '%s'", code, DefaultCode)
		code = DefaultCode
	}

	r.locale.Set(code)

	if persist && r.session.Authenticated() {
		if err := r.UpdateUserLanguage(ctx, code); err != nil {
			return err
		}
	}

	logrus.Debugf("Language changed to: %s", code)
	return nil
}

func (r *Resolver) GetAvailableLanguages() []ds.Language {
	return GetAvailableLanguages()
}

// GetCurrentLanguage - описание активной локали, по умолчанию первый язык
func (r *Resolver) GetCurrentLanguage() ds.Language {
	if lang, ok := LanguageByCode(r.locale.Code()); ok {
		return lang
	}
	return languages[0]
}

// InitialLocale выбирает стартовую локаль: язык профиля, затем язык браузера, затем по умолчанию
func (r *Resolver) InitialLocale(acceptLanguage string) string {
	snap := r.session.Snapshot()
	if user, ok := snap.User(); ok && snap.Authenticated() {
		if stored, ok := user.StoredLanguage(); ok {
			if IsSupported(stored) {
				return stored
			}
			return DefaultCode
		}
	}
	if code, ok := Negotiate(acceptLanguage); ok {
		return code
	}
	return DefaultCode
}
