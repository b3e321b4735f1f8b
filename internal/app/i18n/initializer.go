package i18n

import (
	"context"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// Initializer применяет язык профиля, как только сессия становится аутентифицированной.
// Основной сигнал - Ready хранилища, опрос по расписанию подстраховывает его.
type Initializer struct {
	resolver *Resolver

	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	MaxAttempts     int
}

func NewInitializer(resolver *Resolver) *Initializer {
	return &Initializer{
		resolver:        resolver,
		InitialInterval: 200 * time.Millisecond,
		Multiplier:      1.5,
		MaxInterval:     2 * time.Second,
		MaxAttempts:     5,
	}
}

func (in *Initializer) schedule() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = in.InitialInterval
	b.Multiplier = in.Multiplier
	b.MaxInterval = in.MaxInterval
	b.RandomizationFactor = 0
	b.Reset()
	return b
}

// Run ждет аутентификацию и переключает локаль. Возвращает true, если локаль была изменена.
func (in *Initializer) Run(ctx context.Context) (bool, error) {
	store := in.resolver.session
	ready := store.Ready()
	schedule := in.schedule()

	for attempt := 0; attempt < in.MaxAttempts; attempt++ {
		timer := time.NewTimer(schedule.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		case <-ready:
			timer.Stop()
			return in.apply()
		case <-timer.C:
			if store.Authenticated() {
				return in.apply()
			}
		}
	}

	logrus.Debug("Session not authenticated, keeping default locale")
	return false, nil
}

func (in *Initializer) apply() (bool, error) {
	snap := in.resolver.session.Snapshot()
	user, ok := snap.User()
	if !ok || !snap.Authenticated() {
		return false, nil
	}
	stored, ok := user.StoredLanguage()
	if !ok {
		return false, nil
	}

	// При старте принимается любая локаль каталога, включая zh, которую нельзя выбрать вручную
	target := stored
	if !slices.Contains(CatalogLocales, target) {
		target = DefaultCode
	}
	if target == in.resolver.locale.Code() {
		return false, nil
	}

	logrus.Infof("Setting language to: %s", target)
	in.resolver.locale.Set(target)
	return true, nil
}
