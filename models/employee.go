package models

const (
	RoleAdmin     = "Admin"
	RoleMarketing = "Marketing"
)

type Employee struct {
	ID       int    `json:"id"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Marketing"`
	IsActive bool   `json:"isActive"`
}

func (e *Employee) SetID(id int) { e.ID = id }
