package apiclient

import (
	"context"
	"net/url"
)

// Collection описывает типовой REST-ресурс. GET/POST идут на /api/<name>, PUT/DELETE на /api/<name>/{id}.
type Collection[T any] struct {
	api  *Client
	name string
}

func NewCollection[T any](api *Client, name string) Collection[T] {
	return Collection[T]{api: api, name: name}
}

func (c Collection[T]) Name() string { return c.name }

func (c Collection[T]) Path() string { return "/api/" + c.name }

func (c Collection[T]) ItemPath(id string) string {
	return c.Path() + "/" + url.PathEscape(id)
}

func (c Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.api.Get(ctx, c.Path(), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c Collection[T]) Create(ctx context.Context, in T) (*T, error) {
	var out T
	if err := c.api.Post(ctx, c.Path(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Collection[T]) Update(ctx context.Context, id string, in T) (*T, error) {
	var out T
	if err := c.api.Put(ctx, c.ItemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, c.ItemPath(id))
}
