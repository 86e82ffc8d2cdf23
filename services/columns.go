package services

import (
	"time"

	"storefront/models"
	"storefront/utils"
)

// Sortable columns per entity, keyed by the JSON field name.

var ProductColumns = map[string]utils.Comparator[models.Product]{
	"id":            utils.ByInt(func(p models.Product) int { return p.ID }),
	"name":          utils.ByString(func(p models.Product) string { return p.Name }),
	"initialPrice":  utils.ByFloat(func(p models.Product) float64 { return p.InitialPrice }),
	"sellingPrice":  utils.ByFloat(func(p models.Product) float64 { return p.SellingPrice }),
	"categoryId":    utils.ByInt(func(p models.Product) int { return p.CategoryID }),
	"stockQuantity": utils.ByInt(func(p models.Product) int { return p.StockQuantity }),
	"isActive":      utils.ByBool(func(p models.Product) bool { return p.IsActive }),
}

var CategoryColumns = map[string]utils.Comparator[models.Category]{
	"id":   utils.ByInt(func(c models.Category) int { return c.ID }),
	"name": utils.ByString(func(c models.Category) string { return c.Name }),
	"parentId": utils.ByInt(func(c models.Category) int {
		if c.ParentID == nil {
			return 0
		}
		return *c.ParentID
	}),
	"isActive": utils.ByBool(func(c models.Category) bool { return c.IsActive }),
}

var CustomerColumns = map[string]utils.Comparator[models.Customer]{
	"id":               utils.ByInt(func(c models.Customer) int { return c.ID }),
	"firstName":        utils.ByString(func(c models.Customer) string { return c.FirstName }),
	"lastName":         utils.ByString(func(c models.Customer) string { return c.LastName }),
	"email":            utils.ByString(func(c models.Customer) string { return c.Email }),
	"phone":            utils.ByString(func(c models.Customer) string { return c.Phone }),
	"registrationDate": utils.ByTime(func(c models.Customer) time.Time { return c.RegistrationDate.Time }),
	"isActive":         utils.ByBool(func(c models.Customer) bool { return c.IsActive }),
}

var EmployeeColumns = map[string]utils.Comparator[models.Employee]{
	"id":       utils.ByInt(func(e models.Employee) int { return e.ID }),
	"username": utils.ByString(func(e models.Employee) string { return e.Username }),
	"email":    utils.ByString(func(e models.Employee) string { return e.Email }),
	"role":     utils.ByString(func(e models.Employee) string { return e.Role }),
	"isActive": utils.ByBool(func(e models.Employee) bool { return e.IsActive }),
}

var OrderColumns = map[string]utils.Comparator[models.Order]{
	"id":          utils.ByInt(func(o models.Order) int { return o.ID }),
	"customerId":  utils.ByInt(func(o models.Order) int { return o.CustomerID }),
	"orderDate":   utils.ByTime(func(o models.Order) time.Time { return o.OrderDate.Time }),
	"totalAmount": utils.ByFloat(func(o models.Order) float64 { return o.TotalAmount }),
	"status":      utils.ByString(func(o models.Order) string { return o.Status }),
}
