package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Spok95/supply-console/internal/domain"
	"github.com/Spok95/supply-console/internal/infra/apiclient"
)

const Resource = "products"

type Repo struct {
	api *apiclient.Client
	col apiclient.Collection[Product]
	now func() time.Time
}

func NewRepo(api *apiclient.Client) *Repo {
	return &Repo{api: api, col: apiclient.NewCollection[Product](api, Resource), now: time.Now}
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Recompute()
	}
	return items, nil
}

// Create: id и lastRestocked проставляются, если не заданы; статус пересчитывается.
// Бэкенд отвечает конвертом {"message", "product"}.
func (r *Repo) Create(ctx context.Context, p Product) (*Product, error) {
	now := r.now()
	if p.ID == "" {
		p.ID = fmt.Sprintf("P%03d", now.UnixMilli()%1000)
	}
	if p.LastRestocked == "" {
		p.LastRestocked = now.Format(time.DateOnly)
	}
	p.InternalID = ""
	p.Recompute()

	var raw json.RawMessage
	if err := r.api.Post(ctx, r.col.Path(), p, &raw); err != nil {
		return nil, err
	}
	return decodeSaved(http.MethodPost, r.col.Path(), raw, p)
}

// Update адресует запись по _id; бэкенд возвращает только {"message"}.
func (r *Repo) Update(ctx context.Context, p Product) (*Product, error) {
	id := p.StorageID()
	if id == "" {
		return nil, &domain.ValidationError{Field: "_id", Msg: "is required for update"}
	}
	p.Recompute()

	var raw json.RawMessage
	if err := r.api.Put(ctx, r.col.ItemPath(id), p, &raw); err != nil {
		return nil, err
	}
	return decodeSaved(http.MethodPut, r.col.ItemPath(id), raw, p)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ValidationError{Field: "_id", Msg: "not found for backend delete"}
	}
	return r.col.Delete(ctx, id)
}

// decodeSaved разбирает ответ на запись: конверт с product, сама запись или только message.
func decodeSaved(method, endpoint string, raw json.RawMessage, sent Product) (*Product, error) {
	var env struct {
		Product *Product `json:"product"`
		Error   string   `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &apiclient.ParseError{Endpoint: endpoint, Err: err}
	}
	if env.Error != "" {
		// бэкенд иногда отвечает 200 с {"error": "..."}
		return nil, &apiclient.RequestError{Method: method, Endpoint: endpoint, Status: 200, Detail: env.Error}
	}

	out := sent
	switch {
	case env.Product != nil:
		out = *env.Product
	default:
		var direct Product
		if err := json.Unmarshal(raw, &direct); err == nil && (direct.ID != "" || direct.InternalID != "") {
			out = direct
		}
	}
	if out.InternalID == "" {
		out.InternalID = sent.InternalID
	}
	if out.ID == "" {
		out.ID = sent.ID
	}
	out.Recompute()
	if err := out.Check(); err != nil {
		return nil, &apiclient.ParseError{Endpoint: endpoint, Err: err}
	}
	return &out, nil
}
