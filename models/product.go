package models

type ProductImage struct {
	ID        int    `json:"id,omitempty"`
	ProductID int    `json:"productId,omitempty"`
	ImageURL  string `json:"imageUrl" validate:"required"`
	IsPrimary bool   `json:"isPrimary"`
}

type Product struct {
	ID            int            `json:"id"`
	Name          string         `json:"name" validate:"required,min=2"`
	InitialPrice  float64        `json:"initialPrice" validate:"gte=0"`
	SellingPrice  float64        `json:"sellingPrice" validate:"gte=0"`
	Description   string         `json:"description"`
	CategoryID    int            `json:"categoryId" validate:"gte=0"`
	StockQuantity int            `json:"stockQuantity" validate:"gte=0"`
	IsActive      bool           `json:"isActive"`
	Images        []ProductImage `json:"images,omitempty" validate:"dive"`
}

// PrimaryImage returns the URL shown in list and summary views. When no
// image is flagged, the first image wins.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}

func (p *Product) SetID(id int) { p.ID = id }
