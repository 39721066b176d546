package catalog

import (
	"context"
	"net/http"

	"github.com/rpupo63/catalog-admin/models"
)

// Resource is one REST collection: GET/POST on Path, PUT/DELETE on Path/{id}.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/brands" to c.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// List returns the whole collection in server order.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var result []T
	if err := r.client.doJSON(ctx, http.MethodGet, r.path, nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Create posts record, which must not carry an id, and returns whatever the
// server reported about the new row.
func (r *Resource[T]) Create(ctx context.Context, record any) (models.MutationResult, error) {
	var result models.MutationResult
	err := r.client.doJSON(ctx, http.MethodPost, r.path, nil, record, &result)
	return result, err
}

// Update replaces the record stored under id with the complete record given.
func (r *Resource[T]) Update(ctx context.Context, id int64, record any) (models.MutationResult, error) {
	var result models.MutationResult
	err := r.client.doJSON(ctx, http.MethodPut, recordPath(r.path, id), nil, record, &result)
	if err == nil && result.ID == 0 {
		result.ID = id
	}
	return result, err
}

// Delete removes the record stored under id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (models.MutationResult, error) {
	var result models.MutationResult
	err := r.client.doJSON(ctx, http.MethodDelete, recordPath(r.path, id), nil, nil, &result)
	if err == nil && result.ID == 0 {
		result.ID = id
	}
	return result, err
}
