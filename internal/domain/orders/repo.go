package orders

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "orders"

type Repo struct {
	col apiclient.Collection[CustomerOrder]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[CustomerOrder](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]CustomerOrder, error) { return r.col.List(ctx) }

func (r *Repo) Create(ctx context.Context, o CustomerOrder) (*CustomerOrder, error) {
	o.ID = ""
	return r.col.Create(ctx, o)
}

func (r *Repo) Update(ctx context.Context, o CustomerOrder) (*CustomerOrder, error) {
	return r.col.Update(ctx, o.ID, o)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
