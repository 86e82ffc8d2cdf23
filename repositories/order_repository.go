package repositories

import (
	"context"
	"fmt"
	"strconv"

	"storefront/libs"
	"storefront/models"
)

type OrderRepository struct {
	*Resource[models.Order]
	gw *libs.Gateway
}

func NewOrderRepository(gw *libs.Gateway) *OrderRepository {
	return &OrderRepository{Resource: NewResource[models.Order](gw, OrdersPath), gw: gw}
}

func (r *OrderRepository) CreateItem(ctx context.Context, item models.OrderItem) (models.OrderItem, error) {
	if err := models.Validate(item); err != nil {
		return item, err
	}
	out := item
	err := r.gw.Post(ctx, OrderItemsPath, item, &out)
	return out, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	if !models.IsOrderStatus(status) {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, status)
	}
	return r.gw.Patch(ctx, OrdersPath+"/"+strconv.Itoa(id)+"/status", models.OrderStatusRequest{Status: status}, nil)
}
