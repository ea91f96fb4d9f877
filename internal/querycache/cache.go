package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/singleflight"

	"github.com/Spok95/supply-console/internal/infra/metrics"
)

// Fetcher загружает значение для ключа.
type Fetcher func(ctx context.Context) (any, error)

// State видят подписчики. Err хранит последнюю ошибку загрузки.
// При ошибке Data остаётся прежним.
type State struct {
	Data      any
	HasData   bool
	IsLoading bool
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	key   Key
	fetch Fetcher
	gen   uint64
	local uint64 // поколение последней локальной записи (SetData)
	state State
	subs  map[int]func(State)
}

// Cache: общий для процесса кеш запросов. Меняется только завершением загрузки,
// инвалидацией и локальной записью (SetData).
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	nextSub int

	flights singleflight.Group
	bg      conc.WaitGroup
	base    context.Context

	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New: base используется для фоновых перезагрузок после инвалидации.
func New(base context.Context, log *slog.Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		base:    base,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Read отдаёт свежие данные из кеша или загружает их. Параллельные чтения одного
// ключа (одного поколения) делят один запрос.
func (c *Cache) Read(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	id := key.String()

	c.mu.Lock()
	e := c.entryLocked(key, id)
	e.fetch = fetch
	if e.state.HasData && !e.state.Stale {
		data := e.state.Data
		c.mu.Unlock()
		c.metrics.CacheHit()
		return data, nil
	}
	gen := e.gen
	c.mu.Unlock()

	v, err, _ := c.flights.Do(fmt.Sprintf("%s#%d", id, gen), func() (any, error) {
		return c.load(ctx, id, gen, fetch)
	})
	return v, err
}

func (c *Cache) load(ctx context.Context, id string, gen uint64, fetch Fetcher) (any, error) {
	c.metrics.CacheMiss()
	c.update(id, func(e *entry) { e.state.IsLoading = true })

	v, err := fetch(ctx)

	c.update(id, func(e *entry) {
		e.state.IsLoading = false
		if err != nil {
			e.state.Err = err
			return
		}
		// локальная запись новее ответа, начатого до неё
		if e.local > gen {
			return
		}
		e.state.Data = v
		e.state.HasData = true
		e.state.Err = nil
		e.state.UpdatedAt = c.now()
		// инвалидация во время загрузки оставляет запись устаревшей
		if e.gen == gen {
			e.state.Stale = false
		}
	})
	if err != nil {
		c.metrics.CacheError()
		c.log.Warn("query fetch failed", "key", id, "err", err)
		return nil, err
	}
	return v, nil
}

// Invalidate помечает устаревшими все записи, ключ которых начинается с одного из keys.
// Не блокирует: записи с подписчиками перезагружаются в фоне.
func (c *Cache) Invalidate(keys ...Key) {
	type job struct {
		key   Key
		fetch Fetcher
	}
	var jobs []job
	n := 0

	c.mu.Lock()
	for _, e := range c.entries {
		for _, k := range keys {
			if !e.key.HasPrefix(k) {
				continue
			}
			e.gen++
			e.state.Stale = true
			n++
			if len(e.subs) > 0 && e.fetch != nil {
				jobs = append(jobs, job{key: e.key, fetch: e.fetch})
			}
			break
		}
	}
	c.mu.Unlock()

	c.metrics.Invalidated(n)
	for _, j := range jobs {
		c.refetch(j.key, j.fetch)
	}
}

func (c *Cache) refetch(key Key, fetch Fetcher) {
	c.bg.Go(func() {
		if _, err := c.Read(c.base, key, fetch); err != nil {
			c.log.Debug("background refetch failed", "key", key.String(), "err", err)
		}
	})
}

// Subscribe вызывает fn при каждом изменении состояния ключа. Возвращает отписку.
func (c *Cache) Subscribe(key Key, fn func(State)) (unsubscribe func()) {
	id := key.String()

	c.mu.Lock()
	e := c.entryLocked(key, id)
	sub := c.nextSub
	c.nextSub++
	e.subs[sub] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(e.subs, sub)
		c.mu.Unlock()
	}
}

func (c *Cache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		return e.state
	}
	return State{}
}

// SetData: локальная запись без обращения к API (импорт, оптимистичные изменения).
// Запись считается свежей до следующей инвалидации.
func (c *Cache) SetData(key Key, updater func(old any) any) {
	c.setData(key, updater)
}

// setData возвращает новое поколение записи.
func (c *Cache) setData(key Key, updater func(old any) any) uint64 {
	id := key.String()
	c.mu.Lock()
	c.entryLocked(key, id)
	c.mu.Unlock()

	var gen uint64
	c.update(id, func(e *entry) {
		e.gen++
		e.local = e.gen
		gen = e.gen
		e.state.Data = updater(e.state.Data)
		e.state.HasData = true
		e.state.Err = nil
		e.state.Stale = false
		e.state.UpdatedAt = c.now()
	})
	return gen
}

// restore возвращает данные записи к снимку. Если после локальной записи gen
// ключ инвалидировали, запись остаётся устаревшей и перезагружается.
func (c *Cache) restore(key Key, snap State, gen uint64) {
	id := key.String()
	c.mu.Lock()
	c.entryLocked(key, id)
	c.mu.Unlock()

	var again Fetcher
	c.update(id, func(e *entry) {
		e.state.Data = snap.Data
		e.state.HasData = snap.HasData
		e.state.UpdatedAt = snap.UpdatedAt
		if e.gen == gen {
			e.state.Stale = snap.Stale
			return
		}
		e.state.Stale = true
		if len(e.subs) > 0 && e.fetch != nil {
			again = e.fetch
		}
	})
	if again != nil {
		c.refetch(key, again)
	}
}

// Close дожидается фоновых перезагрузок.
func (c *Cache) Close() {
	c.bg.Wait()
}

func (c *Cache) entryLocked(key Key, id string) *entry {
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: append(Key(nil), key...), subs: make(map[int]func(State))}
		c.entries[id] = e
	}
	return e
}

// update меняет запись под блокировкой и уведомляет подписчиков уже без неё.
func (c *Cache) update(id string, fn func(e *entry)) {
	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	fn(e)
	st := e.state
	subs := make([]func(State), 0, len(e.subs))
	for _, s := range e.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(st)
	}
}
