package transfers

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "stock-transfers"

type Repo struct {
	col apiclient.Collection[StockTransfer]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[StockTransfer](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]StockTransfer, error) { return r.col.List(ctx) }

func (r *Repo) Create(ctx context.Context, t StockTransfer) (*StockTransfer, error) {
	t.ID = ""
	return r.col.Create(ctx, t)
}

func (r *Repo) Update(ctx context.Context, t StockTransfer) (*StockTransfer, error) {
	return r.col.Update(ctx, t.ID, t)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
