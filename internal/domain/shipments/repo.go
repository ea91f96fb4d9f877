package shipments

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "shipments"

type Repo struct {
	col apiclient.Collection[Shipment]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[Shipment](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]Shipment, error) { return r.col.List(ctx) }

// Create: пустая строка фактической доставки отправляется как null.
func (r *Repo) Create(ctx context.Context, s Shipment) (*Shipment, error) {
	s.ID = ""
	if s.ActualDelivery != nil && *s.ActualDelivery == "" {
		s.ActualDelivery = nil
	}
	return r.col.Create(ctx, s)
}

func (r *Repo) Update(ctx context.Context, s Shipment) (*Shipment, error) {
	if s.ActualDelivery != nil && *s.ActualDelivery == "" {
		s.ActualDelivery = nil
	}
	return r.col.Update(ctx, s.ID, s)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
