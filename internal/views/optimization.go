package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/supply-console/internal/domain"
	"github.com/Spok95/supply-console/internal/domain/analytics"
	"github.com/Spok95/supply-console/internal/domain/purchaseorders"
	"github.com/Spok95/supply-console/internal/notify"
	"github.com/Spok95/supply-console/internal/querycache"
)

const expectedLeadDays = 7

// OptimizationView: уровни запасов по категориям и рекомендации по дозаказу.
type OptimizationView struct {
	env   Env
	repo  *analytics.Repo
	repos Repos
	now   func() time.Time
}

func NewOptimization(env Env, repo *analytics.Repo, r Repos) *OptimizationView {
	return &OptimizationView{env: env, repo: repo, repos: r, now: time.Now}
}

func (v *OptimizationView) Resource() string { return "optimization" }

func (v *OptimizationView) fetch(ctx context.Context) (any, error) {
	return v.repo.Optimization(ctx)
}

func (v *OptimizationView) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := v.env.Cache.Read(ctx, KeyOptimization, v.fetch)
		return err
	})
	for _, d := range []Dep{listDep(KeyProducts, v.repos.Products), listDep(KeySuppliers, v.repos.Suppliers)} {
		g.Go(func() error {
			_, err := v.env.Cache.Read(ctx, d.Key, d.Fetch)
			return err
		})
	}
	return g.Wait()
}

func (v *OptimizationView) Render() string {
	st := v.env.Cache.State(KeyOptimization)
	if !st.HasData {
		if st.Err != nil {
			return fmt.Sprintf("Failed to load optimization data: %v", st.Err)
		}
		return "Loading optimization data..."
	}
	o, _ := st.Data.(*analytics.Optimization)
	if o == nil {
		return "No optimization data."
	}

	var b strings.Builder
	b.WriteString("Stock levels:\n")
	for _, c := range o.ChartData {
		fmt.Fprintf(&b, "  %s: current %.0f, optimal %.0f\n", c.Category, c.Current, c.Optimal)
	}
	b.WriteString("Reorder recommendations:")
	if len(o.ReorderRecommendations) == 0 {
		b.WriteString(" none")
	}
	for _, r := range o.ReorderRecommendations {
		fmt.Fprintf(&b, "\n  [%s] %s (%s): stock %d, reorder point %d, suggested order %d",
			r.Priority, r.Product, r.ProductID, r.CurrentStock, r.ReorderPoint, r.SuggestedOrder)
	}
	return b.String()
}

// GeneratePO создаёт заказ поставщику по рекомендации. Поставщик берётся по имени
// из карточки товара; если его не найти, запрос не отправляется.
func (v *OptimizationView) GeneratePO(ctx context.Context, productID string) (*purchaseorders.PurchaseOrder, error) {
	if err := v.Mount(ctx); err != nil {
		return nil, err
	}
	o, _ := querycache.Data[*analytics.Optimization](v.env.Cache, KeyOptimization)

	var rec *analytics.ReorderRecommendation
	if o != nil {
		for i := range o.ReorderRecommendations {
			if o.ReorderRecommendations[i].ProductID == productID {
				rec = &o.ReorderRecommendations[i]
				break
			}
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("recommendation for %q: %w", productID, ErrNotFound)
	}

	look := Lookups{c: v.env.Cache}
	p, ok := look.findProduct(productID)
	if !ok {
		return nil, &domain.ValidationError{Field: "product_id", Msg: "unknown product " + productID}
	}
	s, ok := look.supplierByName(p.Supplier)
	if !ok {
		return nil, &domain.ValidationError{Field: "supplier_id", Msg: fmt.Sprintf("no supplier %q for product %s", p.Supplier, productID)}
	}

	now := v.now()
	po := purchaseorders.PurchaseOrder{
		SupplierID:       s.ID,
		Items:            []purchaseorders.Item{{ProductID: productID, Quantity: rec.SuggestedOrder, Price: p.Price}},
		Status:           purchaseorders.StatusPending,
		OrderDate:        now.Format(time.DateOnly),
		ExpectedDelivery: now.AddDate(0, 0, expectedLeadDays).Format(time.DateOnly),
	}
	if err := po.Validate(); err != nil {
		return nil, err
	}

	created, err := v.repos.PurchaseOrders.Create(ctx, po)
	if err != nil {
		v.toast(ctx, notify.LevelError, "Could not generate purchase order", err.Error())
		return nil, err
	}
	v.env.Cache.Invalidate(KeyOptimization, KeyPurchaseOrders)
	v.toast(ctx, notify.LevelInfo, "Success", fmt.Sprintf("Purchase order for %s has been generated.", rec.Product))
	return created, nil
}

func (v *OptimizationView) toast(ctx context.Context, level notify.Level, title, text string) {
	if v.env.Notify == nil {
		return
	}
	if err := v.env.Notify.Notify(ctx, notify.Event{Level: level, Title: title, Text: text}); err != nil {
		v.env.Log.Warn("notify failed", "title", title, "err", err)
	}
}
