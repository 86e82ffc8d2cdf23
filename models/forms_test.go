package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderInput_PartialBodyKeepsStoredFields(t *testing.T) {
	placed := Timestamp{time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
	stored := Order{
		ID: 5, CustomerID: 12, OrderDate: placed, TotalAmount: 42.5,
		Status: OrderStatusPending, ShippingAddress: "Jl. Kopi 1",
		Items: []OrderItem{{ProductID: 1, Quantity: 2, Price: 3.5}},
	}

	in := OrderInputFrom(stored)
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Shipped"}`), &in))
	got, err := in.ApplyTo(stored)
	require.NoError(t, err)

	assert.Equal(t, 5, got.ID)
	assert.Equal(t, 12, got.CustomerID)
	assert.Equal(t, 42.5, got.TotalAmount)
	assert.Equal(t, placed, got.OrderDate)
	assert.Equal(t, "Jl. Kopi 1", got.ShippingAddress)
	assert.Equal(t, OrderStatusShipped, got.Status)
	assert.Len(t, got.Items, 1)

	in = OrderInputFrom(stored)
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Lost"}`), &in))
	_, err = in.ApplyTo(stored)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCustomerInput_PartialBodyKeepsRegistration(t *testing.T) {
	registered := Timestamp{time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)}
	stored := Customer{ID: 7, FirstName: "Ana", Email: "ana@example.com", RegistrationDate: registered, IsActive: true}

	in := CustomerInputFrom(stored)
	require.NoError(t, json.Unmarshal([]byte(`{"lastName":" Putri "}`), &in))
	got, err := in.ApplyTo(stored)
	require.NoError(t, err)

	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "Putri", got.LastName)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, registered, got.RegistrationDate)
	assert.True(t, got.IsActive)
}

func TestCategoryInput_ParentRoundTrip(t *testing.T) {
	parent := 2
	stored := Category{ID: 4, Name: "Tea", ParentID: &parent, IsActive: true}

	in := CategoryInputFrom(stored)
	assert.Equal(t, FieldText("2"), in.ParentID)
	require.NoError(t, json.Unmarshal([]byte(`{"parentId":""}`), &in))
	got, err := in.ApplyTo(stored)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, "Tea", got.Name)
}

func TestProductInputFrom_LeavesImagesUnset(t *testing.T) {
	in := ProductInputFrom(Product{ID: 3, Name: "Latte", SellingPrice: 3.75, StockQuantity: 10,
		Images: []ProductImage{{ID: 1, ImageURL: "a.png"}}})
	assert.Nil(t, in.Images)
	assert.Equal(t, FieldText("3.75"), in.SellingPrice)
	assert.Equal(t, FieldText("10"), in.StockQuantity)
}

func TestInvalidItems(t *testing.T) {
	items := []Customer{
		{FirstName: "Ana", Email: "ana@example.com"},
		{FirstName: "Budi", Email: "not-an-email"},
		{FirstName: ""},
	}
	failed := InvalidItems(items)
	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed[1], ErrValidation)
	assert.Contains(t, failed, 2)
	assert.Nil(t, InvalidItems(items[:1]))
}
