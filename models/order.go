package models

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

var OrderStatuses = []string{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

func IsOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int         `json:"id"`
	CustomerID      int         `json:"customerId" validate:"gte=0"`
	OrderDate       Timestamp   `json:"orderDate"`
	TotalAmount     float64     `json:"totalAmount" validate:"gte=0"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"items,omitempty" validate:"dive"`
}

type OrderItem struct {
	ID          int     `json:"id,omitempty"`
	OrderID     int     `json:"orderId"`
	ProductID   int     `json:"productId" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	ProductName string  `json:"productName,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (o *Order) SetID(id int) { o.ID = id }
