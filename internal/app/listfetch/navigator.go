package listfetch

import (
	"context"
	"net/url"
	"sync"
)

// Navigator хранит состояние адресной строки представления
type Navigator interface {
	Location(ctx context.Context, view string) (url.Values, error)
	Navigate(ctx context.Context, view string, query url.Values) error
}

// MemoryNavigator держит адресную строку в памяти процесса
type MemoryNavigator struct {
	mu      sync.Mutex
	current map[string]url.Values
	pushes  int
}

func NewMemoryNavigator() *MemoryNavigator {
	return &MemoryNavigator{current: make(map[string]url.Values)}
}

func (n *MemoryNavigator) Location(_ context.Context, view string) (url.Values, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneValues(n.current[view]), nil
}

func (n *MemoryNavigator) Navigate(_ context.Context, view string, query url.Values) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current[view] = cloneValues(query)
	n.pushes++
	return nil
}

// Pushes - сколько раз адрес реально менялся
func (n *MemoryNavigator) Pushes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pushes
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return url.Values{}
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
