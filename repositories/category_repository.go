package repositories

import (
	"storefront/libs"
	"storefront/models"
)

type CategoryRepository struct {
	*Resource[models.Category]
}

func NewCategoryRepository(gw *libs.Gateway) *CategoryRepository {
	return &CategoryRepository{Resource: NewResource[models.Category](gw, CategoriesPath)}
}
