package lastmile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Spok95/supply-console/internal/domain/analytics"
	"github.com/Spok95/supply-console/internal/querycache"
	"github.com/Spok95/supply-console/internal/views"
)

const DefaultInterval = 15 * time.Second

// Центр карты, если доставок нет (Лос-Анджелес).
var defaultCenter = analytics.Location{Lat: 34.0522, Lng: -118.2437}

// Tracker: доставки "последней мили", перечитываются по таймеру.
type Tracker struct {
	cache *querycache.Cache
	repo  *analytics.Repo
	every time.Duration
	log   *slog.Logger

	mu      sync.Mutex
	unsub   func()
	updates int
}

func New(cache *querycache.Cache, repo *analytics.Repo, every time.Duration, log *slog.Logger) *Tracker {
	if every <= 0 {
		every = DefaultInterval
	}
	return &Tracker{cache: cache, repo: repo, every: every, log: log}
}

func (t *Tracker) Resource() string { return "last-mile" }

func (t *Tracker) fetch(ctx context.Context) (any, error) {
	return t.repo.LastMileDeliveries(ctx)
}

// Mount подписывается на ключ: без подписчика инвалидация не вызывает перезагрузку.
func (t *Tracker) Mount(ctx context.Context) error {
	t.mu.Lock()
	if t.unsub == nil {
		t.unsub = t.cache.Subscribe(views.KeyLastMile, func(querycache.State) {
			t.mu.Lock()
			t.updates++
			t.mu.Unlock()
		})
	}
	t.mu.Unlock()

	_, err := t.cache.Read(ctx, views.KeyLastMile, t.fetch)
	return err
}

func (t *Tracker) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
}

// Run опрашивает API с заданным периодом до отмены ctx.
func (t *Tracker) Run(ctx context.Context) error {
	if err := t.Mount(ctx); err != nil {
		t.log.Warn("last-mile initial fetch failed", "err", err)
	}
	t.log.Info("last-mile polling started", "every", t.every)
	t.cache.Poll(ctx, t.every, views.KeyLastMile)
	return nil
}

func (t *Tracker) Updates() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updates
}

func (t *Tracker) Deliveries() []analytics.LastMileDelivery {
	items, _ := querycache.Data[[]analytics.LastMileDelivery](t.cache, views.KeyLastMile)
	return items
}

// Center: положение первой доставки.
func (t *Tracker) Center() analytics.Location {
	items := t.Deliveries()
	if len(items) == 0 {
		return defaultCenter
	}
	return items[0].CurrentLocation
}

func (t *Tracker) Render() string {
	st := t.cache.State(views.KeyLastMile)
	if st.Err != nil {
		return fmt.Sprintf("Error loading delivery data: %v", st.Err)
	}
	if !st.HasData {
		return "Loading deliveries..."
	}
	items, _ := st.Data.([]analytics.LastMileDelivery)
	if len(items) == 0 {
		return "No ongoing deliveries."
	}

	c := t.Center()
	lines := []string{fmt.Sprintf("Map center: %.4f,%.4f", c.Lat, c.Lng)}
	for _, d := range items {
		lines = append(lines, fmt.Sprintf("%s | order %s | driver %s | %s | ETA %d min | %.4f,%.4f",
			d.ID, d.OrderID, d.Driver.Name, d.Status, d.ETAMinutes, d.CurrentLocation.Lat, d.CurrentLocation.Lng))
	}
	return strings.Join(lines, "\n")
}
