package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/utils"
)

type CategoryController struct{}

// @Summary Get all categories
// @Description Get list of active categories
// @Tags Categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(100)
// @Success 200 {object} models.PaginationResponse
// @Router /categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "100"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}

	ws := middleware.GetWorkspace(c)
	result, err := ws.CategoryRepo.List(c.Request.Context(), url.Values{
		"pageNumber": {strconv.Itoa(page)},
		"pageSize":   {strconv.Itoa(pageSize)},
		"isActive":   {"true"},
	})
	if err != nil && models.StatusOf(err) != http.StatusNotFound {
		respondError(c, err)
		return
	}
	if result.Items == nil {
		result.Items = []models.Category{}
	}

	respondPage(c, "Categories retrieved", result.Items,
		pageMeta(page, pageSize, result.TotalCount, utils.TotalPages(result.TotalCount, pageSize)))
}
