package models

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	AsEmployee bool   `json:"asEmployee"`
	UsePhone   bool   `json:"usePhone"`
}

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=6"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AddToCartRequest struct {
	ProductID   int     `json:"productId" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
	ProductName string  `json:"productName"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Notes           string `json:"notes"`
}

type LocaleRequest struct {
	Language string `json:"language" binding:"required"`
}

// PagedResult is the list payload returned by every collection endpoint.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Alert   *Alert      `json:"alert,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Alert   *Alert `json:"alert,omitempty"`
}

type PaginationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
	Alert   *Alert         `json:"alert,omitempty"`
}

// SessionResponse is the visible part of a session. The token stays server side.
type SessionResponse struct {
	LoggedIn bool      `json:"loggedIn"`
	UserType string    `json:"userType,omitempty"`
	IsAdmin  bool      `json:"isAdmin"`
	Customer *Customer `json:"customer,omitempty"`
	Employee *Employee `json:"employee,omitempty"`
	Language string    `json:"language"`
}

type PageContent struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Identified is implemented by records whose id is assigned by the backend.
type Identified interface {
	SetID(id int)
}
