package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
)

type ProductController struct{}

var catalogFilters = []string{"name", "categoryId", "minPrice", "maxPrice"}

// @Summary Home
// @Description First page of active products together with categories
// @Tags Shop
// @Produce json
// @Success 200 {object} models.Response
// @Router / [get]
func (ctrl *ProductController) Home(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	ctx := c.Request.Context()

	if err := ws.Catalog.SetPage(ctx, 1); err != nil {
		respondError(c, err)
		return
	}
	categories, err := ws.CategoryRepo.List(ctx, url.Values{"pageNumber": {"1"}, "pageSize": {"100"}, "isActive": {"true"}})
	if err != nil && models.StatusOf(err) != http.StatusNotFound {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, ws.Message("home.title", "Welcome"), gin.H{
		"products":   ws.Catalog.View().Items,
		"categories": categories.Items,
	})
}

// @Summary Product listing
// @Description Paginated active products. Filter values are applied only with apply=1.
// @Tags Shop
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param name query string false "Name filter"
// @Param categoryId query int false "Category filter"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param apply query int false "Apply the filter values"
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	ctx := c.Request.Context()
	list := ws.Catalog

	for _, field := range catalogFilters {
		if v, ok := c.GetQuery(field); ok {
			list.SetFilter(field, v)
		}
	}

	var err error
	switch {
	case c.Query("apply") == "1":
		err = list.ApplyFilters(ctx)
	case queryInt(c, "pageSize") > 0:
		err = list.SetPageSize(ctx, queryInt(c, "pageSize"))
		if err == nil && queryInt(c, "page") > 1 {
			err = list.SetPage(ctx, queryInt(c, "page"))
		}
	case queryInt(c, "page") > 0:
		err = list.SetPage(ctx, queryInt(c, "page"))
	default:
		err = list.FetchPage(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	view := list.View()
	respondPage(c, "Products retrieved", view.Items, pageMeta(view.Page, view.PageSize, view.TotalCount, view.TotalPages))
}

// @Summary Product detail
// @Tags Shop
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	product, err := ws.ProductRepo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Product retrieved", gin.H{
		"product":      product,
		"primaryImage": product.PrimaryImage(),
		"inCart":       inCart(ws.Cart.Items(), product.ID),
	})
}

func inCart(items []models.CartItem, productID int) int {
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}
