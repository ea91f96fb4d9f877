package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store: локальное хранилище ключ/значение для профиля и настроек.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	// Watch вызывает fn с ключом каждого изменения, пока не отменён ctx.
	Watch(ctx context.Context, fn func(key string)) error
}

// MemStore: хранилище в памяти процесса.
type MemStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers map[int]chan string
	next     int
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}, watchers: map[int]chan string{}}
}

func (m *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemStore) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("prefs %s: value is not valid JSON", key)
	}
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	chans := make([]chan string, 0, len(m.watchers))
	for _, ch := range m.watchers {
		chans = append(chans, ch)
	}
	m.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- key:
		default:
		}
	}
	return nil
}

func (m *MemStore) Watch(ctx context.Context, fn func(key string)) error {
	ch := make(chan string, 16)
	m.mu.Lock()
	id := m.next
	m.next++
	m.watchers[id] = ch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-ch:
			fn(key)
		}
	}
}
