package i18n

import "sync"

// ActiveLocale - текущая локаль интерфейса с подписчиками на смену
type ActiveLocale struct {
	mu     sync.RWMutex
	code   string
	nextID int
	subs   map[int]func(string)
}

func NewActiveLocale(code string) *ActiveLocale {
	if !IsSupported(code) {
		code = DefaultCode
	}
	return &ActiveLocale{code: code, subs: make(map[int]func(string))}
}

func (l *ActiveLocale) Code() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.code
}

// Set меняет локаль и уведомляет подписчиков, если она изменилась
func (l *ActiveLocale) Set(code string) {
	l.mu.Lock()
	if l.code == code {
		l.mu.Unlock()
		return
	}
	l.code = code
	subs := make([]func(string), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(code)
	}
}

// Subscribe регистрирует обработчик смены локали, возвращает функцию отписки
func (l *ActiveLocale) Subscribe(fn func(string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}
