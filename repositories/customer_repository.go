package repositories

import (
	"storefront/libs"
	"storefront/models"
)

// CustomerRepository also serves signup: creating a customer is public.
type CustomerRepository struct {
	*Resource[models.Customer]
}

func NewCustomerRepository(gw *libs.Gateway) *CustomerRepository {
	return &CustomerRepository{Resource: NewResource[models.Customer](gw, CustomersPath)}
}

type EmployeeRepository struct {
	*Resource[models.Employee]
}

func NewEmployeeRepository(gw *libs.Gateway) *EmployeeRepository {
	return &EmployeeRepository{Resource: NewResource[models.Employee](gw, EmployeesPath)}
}
