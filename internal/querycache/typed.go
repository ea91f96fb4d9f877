package querycache

import (
	"context"
	"fmt"
)

// Query: типизированная обёртка над Read.
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Read(ctx, key, func(ctx context.Context) (any, error) { return fetch(ctx) })
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %s holds %T", key, v)
	}
	return t, nil
}

// Data возвращает закешированные данные ключа, если они есть (в том числе устаревшие).
func Data[T any](c *Cache, key Key) (T, bool) {
	var zero T
	st := c.State(key)
	if !st.HasData {
		return zero, false
	}
	t, ok := st.Data.(T)
	return t, ok
}

// Optimistic применяет изменение к кешу сразу, затем выполняет commit.
// При ошибке данные откатываются к снимку, при успехе ключ инвалидируется.
func Optimistic[T any](ctx context.Context, c *Cache, key Key, apply func(T) T, commit func(context.Context) error) error {
	snap := c.State(key)
	gen := c.setData(key, func(old any) any {
		v, _ := old.(T)
		return apply(v)
	})
	if err := commit(ctx); err != nil {
		c.restore(key, snap, gen)
		return err
	}
	c.Invalidate(key)
	return nil
}
