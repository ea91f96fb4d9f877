package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/supply-console/internal/infra/logger"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	c := New(context.Background(), logger.Discard(), nil)
	t.Cleanup(c.Close)
	return c
}

func counting(calls *atomic.Int32, value any) Fetcher {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		prefix Key
		want   bool
	}{
		{"same", K("products"), K("products"), true},
		{"prefix", K("forecast", "P1", 8), K("forecast"), true},
		{"params", K("forecast", "P1", 8), K("forecast", "P1"), true},
		{"other param", K("forecast", "P1", 8), K("forecast", "P2"), false},
		{"longer prefix", K("forecast"), K("forecast", "P1"), false},
		{"other resource", K("suppliers"), K("products"), false},
		{"empty prefix", K("products"), K(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}

	assert.Equal(t, K("forecast", "P1", 8).String(), K("forecast", "P1", 8).String())
	assert.NotEqual(t, K("forecast", "P1", 8).String(), K("forecast", "P1", 9).String())
}

func TestReadCachesFreshData(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		v, err := c.Read(context.Background(), K("products"), counting(&calls, "v1"))
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"a"}, nil
	}

	var wg sync.WaitGroup
	results := make([]any, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Read(context.Background(), K("warehouses"), fetch)
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = c.Read(context.Background(), K("warehouses"), fetch)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"a"}, results[0])
	assert.Equal(t, []string{"a"}, results[1])
}

func TestInvalidateIsIdempotent(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	fetch := counting(&calls, 1)

	_, err := c.Read(context.Background(), K("suppliers"), fetch)
	require.NoError(t, err)

	c.Invalidate(K("suppliers"))
	c.Invalidate(K("suppliers"))

	_, err = c.Read(context.Background(), K("suppliers"), fetch)
	require.NoError(t, err)
	_, err = c.Read(context.Background(), K("suppliers"), fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateDuringFetchKeepsEntryStale(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	fetch := func(context.Context) (any, error) {
		n := calls.Add(1)
		if n == 1 {
			started <- struct{}{}
			<-release
		}
		return n, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Read(context.Background(), K("orders"), fetch)
	}()
	<-started
	c.Invalidate(K("orders"))
	close(release)
	<-done

	st := c.State(K("orders"))
	assert.True(t, st.Stale)
	assert.Equal(t, int32(1), st.Data)

	v, err := c.Read(context.Background(), K("orders"), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestFailedRefetchKeepsPriorData(t *testing.T) {
	c := newCache(t)
	boom := errors.New("backend down")
	fail := false
	fetch := func(context.Context) (any, error) {
		if fail {
			return nil, boom
		}
		return "v1", nil
	}

	_, err := c.Read(context.Background(), K("deliveries"), fetch)
	require.NoError(t, err)

	fail = true
	c.Invalidate(K("deliveries"))
	_, err = c.Read(context.Background(), K("deliveries"), fetch)
	require.ErrorIs(t, err, boom)

	st := c.State(K("deliveries"))
	assert.True(t, st.HasData)
	assert.Equal(t, "v1", st.Data)
	assert.ErrorIs(t, st.Err, boom)
	assert.False(t, st.IsLoading)
}

func TestFirstFetchErrorLeavesNoData(t *testing.T) {
	c := newCache(t)
	boom := errors.New("nope")
	_, err := c.Read(context.Background(), K("shipments"), func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	st := c.State(K("shipments"))
	assert.False(t, st.HasData)
	assert.ErrorIs(t, st.Err, boom)
}

func TestInvalidateByPrefix(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	for _, k := range []Key{K("forecast", "P1", 8), K("forecast", "P2", 8), K("products")} {
		_, err := c.Read(context.Background(), k, counting(&calls, "x"))
		require.NoError(t, err)
	}

	c.Invalidate(K("forecast"))

	assert.True(t, c.State(K("forecast", "P1", 8)).Stale)
	assert.True(t, c.State(K("forecast", "P2", 8)).Stale)
	assert.False(t, c.State(K("products")).Stale)
}

func TestSubscribersGetBackgroundRefetch(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	fetch := func(context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}

	var mu sync.Mutex
	var seen []State
	unsub := c.Subscribe(K("transfers"), func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	_, err := c.Read(context.Background(), K("transfers"), fetch)
	require.NoError(t, err)

	c.Invalidate(K("transfers"))
	c.Close()

	assert.Equal(t, int32(2), calls.Load())
	mu.Lock()
	last := seen[len(seen)-1]
	mu.Unlock()
	assert.Equal(t, 2, last.Data)
	assert.False(t, last.IsLoading)
	assert.False(t, last.Stale)

	unsub()
	c.Invalidate(K("transfers"))
	c.Close()
	assert.Equal(t, int32(2), calls.Load())
}

func TestSetDataIsLocal(t *testing.T) {
	c := newCache(t)
	c.SetData(K("products"), func(old any) any {
		assert.Nil(t, old)
		return []string{"imported"}
	})

	v, ok := Data[[]string](c, K("products"))
	require.True(t, ok)
	assert.Equal(t, []string{"imported"}, v)

	var calls atomic.Int32
	got, err := c.Read(context.Background(), K("products"), counting(&calls, []string{"server"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"imported"}, got)
	assert.Zero(t, calls.Load())
}

func TestSetDataWinsOverEarlierFetch(t *testing.T) {
	c := newCache(t)
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		close(started)
		<-release
		return []string{"server"}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Read(context.Background(), K("products"), fetch)
	}()
	<-started
	c.SetData(K("products"), func(any) any { return []string{"imported"} })
	close(release)
	<-done

	v, ok := Data[[]string](c, K("products"))
	require.True(t, ok)
	assert.Equal(t, []string{"imported"}, v)
	st := c.State(K("products"))
	assert.False(t, st.Stale)
	assert.False(t, st.IsLoading)
}

func TestQueryTyped(t *testing.T) {
	c := newCache(t)
	got, err := Query(context.Background(), c, K("ids"), func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = Query(context.Background(), c, K("ids"), func(context.Context) (string, error) {
		return "", nil
	})
	assert.Error(t, err)
}

func TestOptimistic(t *testing.T) {
	remove := func(id string) func([]string) []string {
		return func(items []string) []string {
			out := make([]string, 0, len(items))
			for _, it := range items {
				if it != id {
					out = append(out, it)
				}
			}
			return out
		}
	}

	t.Run("rollback on failure", func(t *testing.T) {
		c := newCache(t)
		c.SetData(K("products"), func(any) any { return []string{"a", "b"} })
		boom := errors.New("409")

		err := Optimistic(context.Background(), c, K("products"), remove("b"), func(context.Context) error {
			v, _ := Data[[]string](c, K("products"))
			assert.Equal(t, []string{"a"}, v)
			return boom
		})
		require.ErrorIs(t, err, boom)

		v, _ := Data[[]string](c, K("products"))
		assert.Equal(t, []string{"a", "b"}, v)
		assert.False(t, c.State(K("products")).Stale)
	})

	t.Run("rollback keeps invalidation from commit window", func(t *testing.T) {
		c := newCache(t)
		var calls atomic.Int32
		_, err := c.Read(context.Background(), K("products"), counting(&calls, []string{"a", "b"}))
		require.NoError(t, err)
		boom := errors.New("500")

		err = Optimistic(context.Background(), c, K("products"), remove("b"), func(context.Context) error {
			c.Invalidate(K("products"))
			return boom
		})
		require.ErrorIs(t, err, boom)

		st := c.State(K("products"))
		assert.True(t, st.Stale)
		assert.Equal(t, []string{"a", "b"}, st.Data)

		_, err = c.Read(context.Background(), K("products"), counting(&calls, []string{"a", "b"}))
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("rollback refetches for subscribers", func(t *testing.T) {
		c := newCache(t)
		var calls atomic.Int32
		fetch := counting(&calls, []string{"a", "b"})
		unsub := c.Subscribe(K("products"), func(State) {})
		defer unsub()
		_, err := c.Read(context.Background(), K("products"), fetch)
		require.NoError(t, err)

		err = Optimistic(context.Background(), c, K("products"), remove("a"), func(context.Context) error {
			c.mu.Lock()
			c.entries[K("products").String()].gen++
			c.mu.Unlock()
			return errors.New("500")
		})
		require.Error(t, err)
		c.Close()

		assert.Equal(t, int32(2), calls.Load())
		assert.False(t, c.State(K("products")).Stale)
	})

	t.Run("invalidate on success", func(t *testing.T) {
		c := newCache(t)
		c.SetData(K("products"), func(any) any { return []string{"a", "b"} })

		err := Optimistic(context.Background(), c, K("products"), remove("b"), func(context.Context) error { return nil })
		require.NoError(t, err)

		v, _ := Data[[]string](c, K("products"))
		assert.Equal(t, []string{"a"}, v)
		assert.True(t, c.State(K("products")).Stale)
	})
}

func TestPoll(t *testing.T) {
	c := newCache(t)
	var calls atomic.Int32
	_, err := c.Read(context.Background(), K("last-mile"), counting(&calls, "x"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Poll(ctx, 5*time.Millisecond, K("last-mile"))
	}()

	assert.Eventually(t, func() bool { return c.State(K("last-mile")).Stale }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
