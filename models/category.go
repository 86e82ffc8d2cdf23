package models

type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required"`
	ParentID *int   `json:"parentId,omitempty"`
	IsActive bool   `json:"isActive"`
}

func (c *Category) SetID(id int) { c.ID = id }
