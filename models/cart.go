package models

import "github.com/shopspring/decimal"

// CartItem is one aggregated cart line keyed by ProductID. Price, name and
// image are captured when the product is first added and never refreshed.
type CartItem struct {
	ProductID   int     `json:"productId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	ProductName string  `json:"productName"`
}

type CartSummary struct {
	Items    []CartItem      `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string"`
}
