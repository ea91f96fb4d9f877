package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/supply-console/internal/config"
	"github.com/Spok95/supply-console/internal/domain/analytics"
	"github.com/Spok95/supply-console/internal/domain/deliveries"
	"github.com/Spok95/supply-console/internal/domain/orders"
	"github.com/Spok95/supply-console/internal/domain/products"
	"github.com/Spok95/supply-console/internal/domain/purchaseorders"
	"github.com/Spok95/supply-console/internal/domain/shipments"
	"github.com/Spok95/supply-console/internal/domain/suppliers"
	"github.com/Spok95/supply-console/internal/domain/transfers"
	"github.com/Spok95/supply-console/internal/domain/warehouses"
	"github.com/Spok95/supply-console/internal/infra/apiclient"
	"github.com/Spok95/supply-console/internal/infra/db"
	httpx "github.com/Spok95/supply-console/internal/infra/http"
	"github.com/Spok95/supply-console/internal/infra/logger"
	"github.com/Spok95/supply-console/internal/infra/metrics"
	"github.com/Spok95/supply-console/internal/lastmile"
	"github.com/Spok95/supply-console/internal/notify"
	"github.com/Spok95/supply-console/internal/prefs"
	"github.com/Spok95/supply-console/internal/querycache"
	"github.com/Spok95/supply-console/internal/views"
)

func newNotifier(cfg config.Config, log *slog.Logger) notify.Notifier {
	out := notify.Multi{notify.NewLog(log)}
	if cfg.Telegram.Token == "" {
		return out
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
	if err != nil {
		log.Error("telegram init failed, alerts go to log only", "err", err)
		return out
	}
	return append(out, tg)
}

// newPrefsStore: без DSN настройки живут в памяти процесса.
func newPrefsStore(ctx context.Context, dsn string, log *slog.Logger) (prefs.Store, func(), error) {
	if dsn == "" {
		log.Info("postgres DSN is empty, preferences kept in memory")
		return prefs.NewMemStore(), func() {}, nil
	}
	if err := prefs.Migrate(dsn); err != nil {
		return nil, nil, err
	}
	log.Info("migrations applied")

	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	log.Info("db connected")
	return prefs.NewPGStore(pool, log), pool.Close, nil
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)
	log.Info("using API", "base_url", cfg.API.BaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	api := apiclient.New(cfg.API.BaseURL, log,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithMetrics(m),
	)

	store, closeStore, err := newPrefsStore(ctx, cfg.Postgres.DSN, log)
	if err != nil {
		log.Error("preferences store failed", "err", err)
		return
	}
	defer closeStore()
	settings := prefs.NewService(store)

	cache := querycache.New(ctx, log, m)
	defer cache.Close()

	env := views.Env{Cache: cache, Notify: newNotifier(cfg, log), Log: log}
	repos := views.Repos{
		Products:       products.NewRepo(api),
		Suppliers:      suppliers.NewRepo(api),
		PurchaseOrders: purchaseorders.NewRepo(api),
		Warehouses:     warehouses.NewRepo(api),
		Transfers:      transfers.NewRepo(api),
		Shipments:      shipments.NewRepo(api),
		Orders:         orders.NewRepo(api),
		Deliveries:     deliveries.NewRepo(api),
	}
	an := analytics.NewRepo(api)
	console := views.NewConsole(env, repos, an, cfg.Export.PDFRowsPerPage)

	tracker := lastmile.New(cache, an, cfg.LastMile.PollInterval, log)
	console.Register(tracker)
	go func() {
		if err := tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("last-mile tracker stopped", "err", err)
		}
	}()

	go func() {
		err := settings.Watch(ctx, func(key string) {
			log.Info("preferences changed", "key", key)
		})
		if err != nil {
			log.Error("preferences watch stopped", "err", err)
		}
	}()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, httpx.NewConsole(console, settings, log))
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
