package views

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Spok95/supply-console/internal/domain/analytics"
	"github.com/Spok95/supply-console/internal/domain/deliveries"
	"github.com/Spok95/supply-console/internal/domain/orders"
	"github.com/Spok95/supply-console/internal/domain/products"
	"github.com/Spok95/supply-console/internal/domain/purchaseorders"
	"github.com/Spok95/supply-console/internal/domain/shipments"
	"github.com/Spok95/supply-console/internal/domain/suppliers"
	"github.com/Spok95/supply-console/internal/domain/transfers"
	"github.com/Spok95/supply-console/internal/domain/warehouses"
	"github.com/Spok95/supply-console/internal/infra/apiclient"
	"github.com/Spok95/supply-console/internal/infra/logger"
	"github.com/Spok95/supply-console/internal/notify"
	"github.com/Spok95/supply-console/internal/querycache"
)

type record = map[string]any

// fakeAPI: бэкенд в памяти с теми же маршрутами, что и настоящий.
type fakeAPI struct {
	mu       sync.Mutex
	data     map[string][]record
	objects  map[string]any // "GET optimize", "POST forecast"
	fail     map[string]int // "POST /api/warehouses" -> статус
	calls    map[string]int
	lastBody map[string]record
	lastPath map[string]string
	seq      int
	srv      *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		data:     map[string][]record{},
		objects:  map[string]any{},
		fail:     map[string]int{},
		calls:    map[string]int{},
		lastBody: map[string]record{},
		lastPath: map[string]string{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) seed(resource string, recs ...record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[resource] = append(f.data[resource], recs...)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeAPI) body(call string) record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody[call]
}

func (f *fakeAPI) path(method string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPath[method]
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/api/"), "/", 2)
	res := parts[0]
	id := ""
	if len(parts) == 2 {
		id = parts[1]
	}
	call := r.Method + " /api/" + res
	f.calls[call]++
	f.lastPath[r.Method] = r.URL.Path

	var body record
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.lastBody[call] = body

	w.Header().Set("Content-Type", "application/json")
	if st, ok := f.fail[call]; ok {
		w.WriteHeader(st)
		_, _ = w.Write([]byte(`{"detail":"forced failure"}`))
		return
	}
	if obj, ok := f.objects[r.Method+" "+res]; ok {
		_ = json.NewEncoder(w).Encode(obj)
		return
	}

	switch r.Method {
	case http.MethodGet:
		list := f.data[res]
		if list == nil {
			list = []record{}
		}
		_ = json.NewEncoder(w).Encode(list)
	case http.MethodPost:
		f.seq++
		if res == products.Resource {
			body["_id"] = fmt.Sprintf("m%d", f.seq)
			f.data[res] = append(f.data[res], body)
			_ = json.NewEncoder(w).Encode(record{"message": "Product added", "product": body})
			return
		}
		body["id"] = fmt.Sprintf("%s-%d", res, f.seq)
		f.data[res] = append(f.data[res], body)
		_ = json.NewEncoder(w).Encode(body)
	case http.MethodPut:
		for i, rec := range f.data[res] {
			if rec["id"] == id || rec["_id"] == id {
				for k, v := range body {
					rec[k] = v
				}
				f.data[res][i] = rec
				if res == products.Resource {
					_ = json.NewEncoder(w).Encode(record{"message": "Product updated"})
				} else {
					_ = json.NewEncoder(w).Encode(rec)
				}
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"not found"}`))
	case http.MethodDelete:
		list := f.data[res]
		for i, rec := range list {
			if rec["id"] == id || rec["_id"] == id {
				f.data[res] = append(list[:i:i], list[i+1:]...)
				_, _ = w.Write([]byte(`{"message":"deleted"}`))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"not found"}`))
	}
}

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) byLevel(l notify.Level) []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Event
	for _, e := range r.events {
		if e.Level == l {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	api       *fakeAPI
	env       Env
	repos     Repos
	analytics *analytics.Repo
	toasts    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := newFakeAPI(t)
	client := apiclient.New(api.srv.URL, logger.Discard(), apiclient.WithHTTPClient(api.srv.Client()))

	cache := querycache.New(context.Background(), logger.Discard(), nil)
	t.Cleanup(cache.Close)

	toasts := &recorder{}
	return &fixture{
		api:    api,
		env:    Env{Cache: cache, Notify: toasts, Log: logger.Discard()},
		toasts: toasts,
		repos: Repos{
			Products:       products.NewRepo(client),
			Suppliers:      suppliers.NewRepo(client),
			PurchaseOrders: purchaseorders.NewRepo(client),
			Warehouses:     warehouses.NewRepo(client),
			Transfers:      transfers.NewRepo(client),
			Shipments:      shipments.NewRepo(client),
			Orders:         orders.NewRepo(client),
			Deliveries:     deliveries.NewRepo(client),
		},
		analytics: analytics.NewRepo(client),
	}
}
