package warehouses

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "warehouses"

type Repo struct {
	col apiclient.Collection[Warehouse]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[Warehouse](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]Warehouse, error) { return r.col.List(ctx) }

func (r *Repo) Create(ctx context.Context, w Warehouse) (*Warehouse, error) {
	w.ID = ""
	return r.col.Create(ctx, w)
}

func (r *Repo) Update(ctx context.Context, w Warehouse) (*Warehouse, error) {
	return r.col.Update(ctx, w.ID, w)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
