package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/supply-console/internal/infra/logger"
	"github.com/Spok95/supply-console/internal/infra/metrics"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (w widget) Check() error {
	if w.ID == "" {
		return errors.New("id missing")
	}
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := metrics.New(prometheus.NewRegistry())
	return New(srv.URL+"/", logger.Discard(), WithMetrics(m)), m
}

func TestGetDecodesAndChecks(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/widgets", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"id":"w1","name":"One"},{"id":"w2","name":"Two"}]`))
	})

	var out []widget
	require.NoError(t, c.Get(context.Background(), "/api/widgets", &out))
	assert.Equal(t, []widget{{"w1", "One"}, {"w2", "Two"}}, out)
	assert.Equal(t, 1, testutil.CollectAndCount(m.APIRequests()))
}

func TestGetSchemaViolationIsParseError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"w1"},{"name":"no id"}]`))
	})

	var out []widget
	err := c.Get(context.Background(), "/api/widgets", &out)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/api/widgets", pe.Endpoint)
	assert.Contains(t, err.Error(), "item 1")
}

func TestMalformedJSONIsParseError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	var out []widget
	var pe *ParseError
	assert.ErrorAs(t, c.Get(context.Background(), "/api/widgets", &out), &pe)
}

func TestNonSuccessStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Supplier not found"}`))
	})

	t.Run("read", func(t *testing.T) {
		var out []widget
		err := c.Get(context.Background(), "/api/suppliers", &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
		assert.NotErrorIs(t, err, ErrMutation)
		assert.Equal(t, http.StatusNotFound, StatusOf(err))
		assert.Contains(t, err.Error(), "Supplier not found")
	})

	t.Run("write", func(t *testing.T) {
		err := c.Put(context.Background(), "/api/suppliers/s1", widget{ID: "s1"}, &widget{})
		var re *RequestError
		require.ErrorAs(t, err, &re)
		assert.ErrorIs(t, err, ErrMutation)
		assert.Equal(t, "/api/suppliers/s1", re.Endpoint)
		assert.Equal(t, http.MethodPut, re.Method)
	})
}

func TestWriteSendsJSON(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		var in widget
		assert.NoError(t, json.Unmarshal(raw, &in))
		in.ID = "new-id"
		_ = json.NewEncoder(w).Encode(in)
	})

	var out widget
	require.NoError(t, c.Post(context.Background(), "/api/widgets", widget{Name: "N"}, &out))
	assert.Equal(t, widget{ID: "new-id", Name: "N"}, out)
	assert.Equal(t, 1, calls)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, logger.Discard())
	err := c.Delete(context.Background(), "/api/widgets/1")
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 0, re.Status)
	assert.ErrorIs(t, err, ErrMutation)
}

func TestCollectionPaths(t *testing.T) {
	col := NewCollection[widget](New("http://x", logger.Discard()), "stock-transfers")
	assert.Equal(t, "/api/stock-transfers", col.Path())
	assert.Equal(t, "/api/stock-transfers/a%2Fb", col.ItemPath("a/b"))
}

func TestCollectionListEmptyIsNotNil(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	items, err := NewCollection[widget](c, "widgets").List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "products", resourceOf("/api/products/42"))
	assert.Equal(t, "supply-chain-summary", resourceOf("/api/supply-chain-summary"))
}
