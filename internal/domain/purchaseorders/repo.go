package purchaseorders

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "purchase-orders"

type Repo struct {
	col apiclient.Collection[PurchaseOrder]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[PurchaseOrder](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]PurchaseOrder, error) { return r.col.List(ctx) }

func (r *Repo) Create(ctx context.Context, o PurchaseOrder) (*PurchaseOrder, error) {
	o.ID = ""
	return r.col.Create(ctx, o)
}

func (r *Repo) Update(ctx context.Context, o PurchaseOrder) (*PurchaseOrder, error) {
	return r.col.Update(ctx, o.ID, o)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
