package deliveries

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "deliveries"

type Repo struct {
	col apiclient.Collection[Delivery]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[Delivery](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]Delivery, error) { return r.col.List(ctx) }

func (r *Repo) Create(ctx context.Context, d Delivery) (*Delivery, error) {
	d.ID = ""
	if d.ProofOfDelivery != nil && *d.ProofOfDelivery == "" {
		d.ProofOfDelivery = nil
	}
	return r.col.Create(ctx, d)
}

func (r *Repo) Update(ctx context.Context, d Delivery) (*Delivery, error) {
	if d.ProofOfDelivery != nil && *d.ProofOfDelivery == "" {
		d.ProofOfDelivery = nil
	}
	return r.col.Update(ctx, d.ID, d)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
