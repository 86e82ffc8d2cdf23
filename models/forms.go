package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldText is a form field typed as text. It accepts a JSON string or a
// bare number and keeps the text for later parsing.
type FieldText string

func (f *FieldText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FieldText(s)
		return nil
	}
	*f = FieldText(b)
	return nil
}

func (f FieldText) Float(field string) (float64, error) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}
	return v, nil
}

func floatText(v float64) FieldText {
	return FieldText(strconv.FormatFloat(v, 'f', -1, 64))
}

func intText(v int) FieldText { return FieldText(strconv.Itoa(v)) }

func (f FieldText) Int(field string) (int, error) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrValidation, field)
	}
	return v, nil
}

type ImageInput struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

// Each input has a From* constructor that loads the fields of a stored
// record. Decoding a request body over it leaves absent keys at their
// stored values, and ApplyTo writes the result back onto that record.

type ProductInput struct {
	Name          string       `json:"name"`
	InitialPrice  FieldText    `json:"initialPrice" swaggertype:"string"`
	SellingPrice  FieldText    `json:"sellingPrice" swaggertype:"string"`
	Description   string       `json:"description"`
	CategoryID    FieldText    `json:"categoryId" swaggertype:"string"`
	StockQuantity FieldText    `json:"stockQuantity" swaggertype:"string"`
	IsActive      bool         `json:"isActive"`
	Images        []ImageInput `json:"images"`
}

// ProductInputFrom leaves Images nil so an absent images key keeps the
// stored images untouched.
func ProductInputFrom(p Product) ProductInput {
	return ProductInput{
		Name:          p.Name,
		InitialPrice:  floatText(p.InitialPrice),
		SellingPrice:  floatText(p.SellingPrice),
		Description:   p.Description,
		CategoryID:    intText(p.CategoryID),
		StockQuantity: intText(p.StockQuantity),
		IsActive:      p.IsActive,
	}
}

func (in ProductInput) ToModel() (Product, error) { return in.ApplyTo(Product{}) }

func (in ProductInput) ApplyTo(p Product) (Product, error) {
	var err error
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.IsActive = in.IsActive
	if p.InitialPrice, err = in.InitialPrice.Float("initialPrice"); err != nil {
		return p, err
	}
	if p.SellingPrice, err = in.SellingPrice.Float("sellingPrice"); err != nil {
		return p, err
	}
	if p.CategoryID, err = in.CategoryID.Int("categoryId"); err != nil {
		return p, err
	}
	if p.StockQuantity, err = in.StockQuantity.Int("stockQuantity"); err != nil {
		return p, err
	}
	return p, nil
}

type CategoryInput struct {
	Name     string    `json:"name"`
	ParentID FieldText `json:"parentId" swaggertype:"string"`
	IsActive bool      `json:"isActive"`
}

func CategoryInputFrom(c Category) CategoryInput {
	in := CategoryInput{Name: c.Name, IsActive: c.IsActive}
	if c.ParentID != nil {
		in.ParentID = intText(*c.ParentID)
	}
	return in
}

func (in CategoryInput) ToModel() (Category, error) { return in.ApplyTo(Category{}) }

func (in CategoryInput) ApplyTo(c Category) (Category, error) {
	c.Name = strings.TrimSpace(in.Name)
	c.IsActive = in.IsActive
	parent, err := in.ParentID.Int("parentId")
	if err != nil {
		return c, err
	}
	c.ParentID = nil
	if parent > 0 {
		c.ParentID = &parent
	}
	return c, nil
}

type CustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	IsActive  bool   `json:"isActive"`
}

func CustomerInputFrom(c Customer) CustomerInput {
	return CustomerInput{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Password:  c.Password,
		IsActive:  c.IsActive,
	}
}

func (in CustomerInput) ToModel() (Customer, error) { return in.ApplyTo(Customer{}) }

func (in CustomerInput) ApplyTo(c Customer) (Customer, error) {
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Password = in.Password
	c.IsActive = in.IsActive
	return c, nil
}

type EmployeeInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func EmployeeInputFrom(e Employee) EmployeeInput {
	return EmployeeInput{
		Username: e.Username,
		Password: e.Password,
		Email:    e.Email,
		Phone:    e.Phone,
		Role:     e.Role,
		IsActive: e.IsActive,
	}
}

func (in EmployeeInput) ToModel() (Employee, error) { return in.ApplyTo(Employee{}) }

func (in EmployeeInput) ApplyTo(e Employee) (Employee, error) {
	e.Username = strings.TrimSpace(in.Username)
	e.Password = in.Password
	e.Email = strings.TrimSpace(in.Email)
	e.Phone = strings.TrimSpace(in.Phone)
	e.Role = in.Role
	e.IsActive = in.IsActive
	return e, nil
}

type OrderInput struct {
	CustomerID      FieldText `json:"customerId" swaggertype:"string"`
	TotalAmount     FieldText `json:"totalAmount" swaggertype:"string"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shippingAddress"`
	Notes           string    `json:"notes"`
}

func OrderInputFrom(o Order) OrderInput {
	return OrderInput{
		CustomerID:      intText(o.CustomerID),
		TotalAmount:     floatText(o.TotalAmount),
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
	}
}

func (in OrderInput) ToModel() (Order, error) { return in.ApplyTo(Order{}) }

// ApplyTo keeps the order date and items of o.
func (in OrderInput) ApplyTo(o Order) (Order, error) {
	var err error
	o.Status = in.Status
	o.ShippingAddress = in.ShippingAddress
	o.Notes = in.Notes
	if o.CustomerID, err = in.CustomerID.Int("customerId"); err != nil {
		return o, err
	}
	if o.TotalAmount, err = in.TotalAmount.Float("totalAmount"); err != nil {
		return o, err
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if !IsOrderStatus(o.Status) {
		return o, fmt.Errorf("%w: %q", ErrUnknownStatus, o.Status)
	}
	return o, nil
}
