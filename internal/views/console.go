package views

import (
	"context"
	"sort"

	"github.com/Spok95/supply-console/internal/domain/analytics"
)

// View: то, что нужно HTTP-слою от экрана.
type View interface {
	Resource() string
	Mount(ctx context.Context) error
	Render() string
}

// Editable: экран с формой и удалением.
type Editable interface {
	View
	SubmitJSON(ctx context.Context, raw []byte) error
	Remove(ctx context.Context, id string, confirmed bool) error
}

// Console собирает все экраны над общим кешем.
type Console struct {
	Products     *ProductView
	Optimization *OptimizationView
	Dashboard    *Dashboard

	views map[string]View
}

func NewConsole(env Env, r Repos, an *analytics.Repo, rowsPerPage int) *Console {
	c := &Console{
		Products:     NewProducts(env, r, rowsPerPage),
		Optimization: NewOptimization(env, an, r),
		Dashboard:    NewDashboard(env, an),
	}
	all := []View{
		c.Products,
		NewSuppliers(env, r),
		NewPurchaseOrders(env, r),
		NewWarehouses(env, r),
		NewTransfers(env, r),
		NewShipments(env, r),
		NewOrders(env, r),
		NewDeliveries(env, r),
		c.Optimization,
		c.Dashboard,
	}
	c.views = make(map[string]View, len(all))
	for _, v := range all {
		c.views[v.Resource()] = v
	}
	return c
}

// Register добавляет экран, собранный вне пакета.
func (c *Console) Register(v View) {
	c.views[v.Resource()] = v
}

func (c *Console) View(resource string) (View, bool) {
	v, ok := c.views[resource]
	return v, ok
}

func (c *Console) Resources() []string {
	out := make([]string, 0, len(c.views))
	for r := range c.views {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
