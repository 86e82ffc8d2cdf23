package models

type Customer struct {
	ID               int       `json:"id"`
	FirstName        string    `json:"firstName" validate:"required"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email" validate:"omitempty,email"`
	Phone            string    `json:"phone"`
	RegistrationDate Timestamp `json:"registrationDate"`
	IsActive         bool      `json:"isActive"`
	// Password travels in plaintext to the backend, which owns hashing.
	Password string `json:"password,omitempty"`
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

func (c *Customer) SetID(id int) { c.ID = id }
