package suppliers

import (
	"context"

	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "suppliers"

type Repo struct {
	col apiclient.Collection[Supplier]
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{col: apiclient.NewCollection[Supplier](api, Resource)}
}

func (r *Repo) List(ctx context.Context) ([]Supplier, error) { return r.col.List(ctx) }

// Create и Update зажимают reliability_score в [0,1] до отправки.
func (r *Repo) Create(ctx context.Context, s Supplier) (*Supplier, error) {
	s.Normalize()
	s.ID = ""
	return r.col.Create(ctx, s)
}

func (r *Repo) Update(ctx context.Context, s Supplier) (*Supplier, error) {
	s.Normalize()
	return r.col.Update(ctx, s.ID, s)
}

func (r *Repo) Delete(ctx context.Context, id string) error { return r.col.Delete(ctx, id) }
