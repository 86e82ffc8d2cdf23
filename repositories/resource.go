package repositories

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"storefront/libs"
	"storefront/models"
)

// Backend collection paths.
const (
	ProductsPath      = "/API/ProductsAPI"
	ProductImagesPath = "/API/ProductImagesAPI"
	CategoriesPath    = "/API/CategoriesAPI"
	CustomersPath     = "/API/CustomersAPI"
	EmployeesPath     = "/API/EmployeesAPI"
	OrdersPath        = "/API/OrdersAPI"
	OrderItemsPath    = "/API/OrderItemsAPI"
)

// Resource is the CRUD surface shared by every backend collection.
type Resource[T any] struct {
	gw   *libs.Gateway
	path string
}

func NewResource[T any](gw *libs.Gateway, path string) *Resource[T] {
	return &Resource[T]{gw: gw, path: path}
}

func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) itemPath(id int) string {
	return r.path + "/" + strconv.Itoa(id)
}

func (r *Resource[T]) List(ctx context.Context, query url.Values) (models.PagedResult[T], error) {
	var page models.PagedResult[T]
	if err := r.gw.Get(ctx, r.path, query, &page); err != nil {
		return models.PagedResult[T]{}, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	// Stored rows that break the input rules stay listed so they can be fixed.
	for i, err := range models.InvalidItems(page.Items) {
		r.gw.Logger().Warn("Backend returned an invalid record",
			zap.String("path", r.path), zap.Int("index", i), zap.Error(err))
	}
	return page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int) (T, error) {
	var rec T
	if err := r.gw.Get(ctx, r.itemPath(id), nil, &rec); err != nil {
		return rec, err
	}
	if err := models.Validate(rec); err != nil {
		r.gw.Logger().Warn("Backend returned an invalid record",
			zap.String("path", r.itemPath(id)), zap.Error(err))
	}
	return rec, nil
}

// Create posts rec and returns the stored record, or rec itself when the
// backend answers without a body.
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	if err := models.Validate(rec); err != nil {
		return rec, err
	}
	out := rec
	if err := r.gw.Post(ctx, r.path, rec, &out); err != nil {
		return rec, err
	}
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int, rec T) (T, error) {
	if err := models.Validate(rec); err != nil {
		return rec, err
	}
	out := rec
	if err := r.gw.Put(ctx, r.itemPath(id), rec, &out); err != nil {
		return rec, err
	}
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	return r.gw.Delete(ctx, r.itemPath(id))
}
