package views

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/supply-console/internal/domain/analytics"
	"github.com/Spok95/supply-console/internal/querycache"
)

// Dashboard: сводные показатели цепочки поставок, движение запасов и прогнозы.
type Dashboard struct {
	env  Env
	repo *analytics.Repo
}

func NewDashboard(env Env, repo *analytics.Repo) *Dashboard {
	return &Dashboard{env: env, repo: repo}
}

func (d *Dashboard) Resource() string { return "dashboard" }

func (d *Dashboard) queries() []Dep {
	return []Dep{
		{Key: KeySummary, Fetch: func(ctx context.Context) (any, error) { return d.repo.Summary(ctx) }},
		{Key: KeyForecastAccuracy, Fetch: func(ctx context.Context) (any, error) { return d.repo.ForecastAccuracy(ctx) }},
		{Key: KeyCostSavings, Fetch: func(ctx context.Context) (any, error) { return d.repo.CostSavings(ctx) }},
		{Key: KeyInsights, Fetch: func(ctx context.Context) (any, error) { return d.repo.Insights(ctx) }},
		{Key: KeyStockMovement, Fetch: func(ctx context.Context) (any, error) { return d.repo.StockMovement(ctx) }},
	}
}

// Mount читает все показатели; ошибка одного не мешает остальным.
func (d *Dashboard) Mount(ctx context.Context) error {
	var g errgroup.Group
	for _, q := range d.queries() {
		g.Go(func() error {
			_, err := d.env.Cache.Read(ctx, q.Key, q.Fetch)
			return err
		})
	}
	return g.Wait()
}

func (d *Dashboard) Render() string {
	var b strings.Builder

	if s, ok := querycache.Data[*analytics.Summary](d.env.Cache, KeySummary); ok && s != nil {
		fmt.Fprintf(&b, "Suppliers: %d | Warehouses: %d | Products: %d\n", s.TotalSuppliers, s.TotalWarehouses, s.TotalProducts)
		fmt.Fprintf(&b, "Open purchase orders: %d | Open customer orders: %d | Open deliveries: %d | Open shipments: %d\n",
			s.OpenPurchaseOrders, s.OpenCustomerOrders, s.OpenDeliveries, s.OpenShipments)
	} else {
		b.WriteString(d.placeholder(KeySummary, "summary") + "\n")
	}

	if a, ok := querycache.Data[*analytics.ForecastAccuracy](d.env.Cache, KeyForecastAccuracy); ok && a != nil {
		fmt.Fprintf(&b, "Forecast accuracy: %g%%\n", a.Accuracy)
	}
	if s, ok := querycache.Data[*analytics.CostSavings](d.env.Cache, KeyCostSavings); ok && s != nil {
		fmt.Fprintf(&b, "Cost savings: $%d\n", s.Savings)
	}

	if mv, ok := querycache.Data[[]analytics.StockMovement](d.env.Cache, KeyStockMovement); ok {
		b.WriteString("Stock movement:\n")
		for _, m := range mv {
			fmt.Fprintf(&b, "  %s: in stock %.0f, sold %.0f, restocked %.0f\n", m.Month, m.InStock, m.Sold, m.Restocked)
		}
	} else {
		b.WriteString(d.placeholder(KeyStockMovement, "stock movement") + "\n")
	}

	insights, ok := querycache.Data[[]analytics.Insight](d.env.Cache, KeyInsights)
	switch {
	case !ok:
		b.WriteString(d.placeholder(KeyInsights, "insights"))
	case len(insights) == 0:
		b.WriteString("No insights available.")
	default:
		b.WriteString("Insights:")
		for _, in := range insights {
			fmt.Fprintf(&b, "\n  %s: demand %s, trend %s, confidence %d%% - %s",
				in.Product, in.CurrentDemand, in.PredictedTrend, in.Confidence, in.Recommendation)
		}
	}
	return b.String()
}

func (d *Dashboard) placeholder(key querycache.Key, what string) string {
	if err := d.env.Cache.State(key).Err; err != nil {
		return fmt.Sprintf("Failed to load %s: %v", what, err)
	}
	return fmt.Sprintf("Loading %s...", what)
}

// Forecast: прогноз спроса; ключ включает товар и горизонт.
func (d *Dashboard) Forecast(ctx context.Context, productID string, periods int) ([]analytics.ForecastPoint, error) {
	return querycache.Query(ctx, d.env.Cache, KeyForecast(productID, periods), func(ctx context.Context) ([]analytics.ForecastPoint, error) {
		return d.repo.Forecast(ctx, productID, periods)
	})
}
