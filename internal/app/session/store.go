package session

import (
	"errors"
	"sync"

	"Admin-Console/internal/app/ds"
)

var ErrUnauthenticated = errors.New("session is not authenticated")

type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
)

// Session - снимок состояния аутентификации
type Session struct {
	Status       Status          `json:"status"`
	Token        string          `json:"-"`
	Data         *ds.SessionData `json:"data,omitempty"`
	ActiveLocale string          `json:"active_locale,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// User возвращает пользователя сессии, если он есть
func (s Session) User() (ds.User, bool) {
	if s.Data == nil {
		return ds.User{}, false
	}
	return s.Data.User, true
}

func (s Session) clone() Session {
	s.Data = s.Data.Clone()
	return s
}

// Store - контекст приложения: состояние аутентификации и активная локаль.
// Чтение не меняет состояние, все изменения проходят через Update.
type Store struct {
	mu    sync.RWMutex
	state Session
	ready chan struct{}
}

func NewStore() *Store {
	return &Store{
		state: Session{Status: StatusUnauthenticated},
		ready: make(chan struct{}),
	}
}

// Restore создает хранилище из сохраненного снимка
func Restore(snapshot Session) *Store {
	s := NewStore()
	s.Update(func(cur *Session) { *cur = snapshot.clone() })
	return s
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) ActiveLocale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveLocale
}

func (s *Store) User() (ds.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User()
}

// Ready закрывается, когда сессия становится аутентифицированной
func (s *Store) Ready() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Update - единственная точка изменения состояния
func (s *Store) Update(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasAuthenticated := s.state.Authenticated()
	fn(&s.state)
	isAuthenticated := s.state.Authenticated()

	switch {
	case !wasAuthenticated && isAuthenticated:
		close(s.ready)
	case wasAuthenticated && !isAuthenticated:
		s.ready = make(chan struct{})
	}
}

// Begin отмечает начало восстановления сессии по токену
func (s *Store) Begin(token string) {
	s.Update(func(cur *Session) {
		cur.Status = StatusLoading
		cur.Token = token
		cur.Data = nil
	})
}

func (s *Store) Authenticate(token string, data *ds.SessionData) {
	s.Update(func(cur *Session) {
		cur.Status = StatusAuthenticated
		cur.Token = token
		cur.Data = data.Clone()
	})
}

// Clear сбрасывает аутентификацию, активная локаль остается
func (s *Store) Clear() {
	s.Update(func(cur *Session) {
		cur.Status = StatusUnauthenticated
		cur.Token = ""
		cur.Data = nil
	})
}

// SetUserLanguage меняет язык в профиле пользователя сессии
func (s *Store) SetUserLanguage(code string) error {
	var err error
	s.Update(func(cur *Session) {
		if !cur.Authenticated() || cur.Data == nil {
			err = ErrUnauthenticated
			return
		}
		cur.Data.User.Language = code
	})
	return err
}

func (s *Store) SetActiveLocale(code string) {
	s.Update(func(cur *Session) { cur.ActiveLocale = code })
}
