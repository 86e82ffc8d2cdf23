package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

// screen is one manage-* table with its form.
type screen interface {
	view() interface{}
	meta() models.PaginationMeta
	load(ctx context.Context, page, pageSize int) error
	setFilters(filters map[string]string)
	apply(ctx context.Context) error
	toggleSort(column string) (utils.SortState, bool)
	create(c *gin.Context) (interface{}, error)
	update(c *gin.Context, id int) (interface{}, error)
	remove(ctx context.Context, id int) error
}

type crudStore[T any] interface {
	services.Saver[T]
	Get(ctx context.Context, id int) (T, error)
	Delete(ctx context.Context, id int) error
}

type formInput[T any] interface {
	ApplyTo(base T) (T, error)
}

type entityScreen[T any, In formInput[T]] struct {
	ws      *services.Workspace
	list    *services.ListController[T]
	store   crudStore[T]
	columns map[string]utils.Comparator[T]
	name    string
	// fill loads a stored record into the input before the body is decoded.
	fill func(T) In
}

func (s *entityScreen[T, In]) view() interface{} { return s.list.View() }

func (s *entityScreen[T, In]) meta() models.PaginationMeta {
	v := s.list.View()
	return pageMeta(v.Page, v.PageSize, v.TotalCount, v.TotalPages)
}

func (s *entityScreen[T, In]) load(ctx context.Context, page, pageSize int) error {
	if pageSize > 0 && pageSize != s.list.View().PageSize {
		if err := s.list.SetPageSize(ctx, pageSize); err != nil {
			return err
		}
		if page <= 1 {
			return nil
		}
	}
	if page > 0 {
		return s.list.SetPage(ctx, page)
	}
	return s.list.FetchPage(ctx)
}

func (s *entityScreen[T, In]) setFilters(filters map[string]string) {
	for field, value := range filters {
		s.list.SetFilter(field, value)
	}
}

func (s *entityScreen[T, In]) apply(ctx context.Context) error { return s.list.ApplyFilters(ctx) }

func (s *entityScreen[T, In]) toggleSort(column string) (utils.SortState, bool) {
	if _, ok := s.columns[column]; !ok {
		return utils.SortState{}, false
	}
	return s.list.ToggleSort(column), true
}

func (s *entityScreen[T, In]) formOptions() []services.FormOption[T] {
	return []services.FormOption[T]{
		services.WithRefresh[T](func(ctx context.Context) { _ = s.list.FetchPage(ctx) }),
		services.WithAlert[T](s.ws.PushAlert),
		services.WithSuccessMessages[T](
			s.ws.Message("manage."+s.name+".created", "Created successfully"),
			s.ws.Message("manage."+s.name+".updated", "Updated successfully"),
		),
	}
}

// bind decodes the body over base. Keys missing from the body keep the
// values of base.
func (s *entityScreen[T, In]) bind(c *gin.Context, base T, prefill bool) (In, T, error) {
	var in In
	if prefill {
		in = s.fill(base)
	}
	if err := bindJSON(c, &in); err != nil {
		return in, base, err
	}
	rec, err := in.ApplyTo(base)
	return in, rec, err
}

func (s *entityScreen[T, In]) create(c *gin.Context) (interface{}, error) {
	var zero T
	_, rec, err := s.bind(c, zero, false)
	if err != nil {
		return nil, err
	}
	form := services.NewFormController[T](s.store, services.CreateMode(), zero, s.formOptions()...)
	return form.Submit(c.Request.Context(), rec)
}

func (s *entityScreen[T, In]) update(c *gin.Context, id int) (interface{}, error) {
	ctx := c.Request.Context()
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	_, rec, err := s.bind(c, existing, true)
	if err != nil {
		return nil, err
	}
	form := services.NewFormController[T](s.store, services.UpdateMode(id), existing, s.formOptions()...)
	return form.Submit(ctx, rec)
}

func (s *entityScreen[T, In]) remove(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.list.FetchPage(ctx)
	return nil
}

// productScreen saves images alongside the product record.
type productScreen struct {
	*entityScreen[models.Product, models.ProductInput]
}

func (s productScreen) create(c *gin.Context) (interface{}, error) {
	in, rec, err := s.bind(c, models.Product{}, false)
	if err != nil {
		return nil, err
	}
	ws := s.ws
	form := services.NewProductForm(ws.ProductRepo, ws.Images(), services.CreateMode(), models.Product{}, ws.Logger(), s.formOptions()...)
	form.ApplyImages(in.Images)
	return form.Submit(c.Request.Context(), rec)
}

func (s productScreen) update(c *gin.Context, id int) (interface{}, error) {
	ws := s.ws
	ctx := c.Request.Context()
	existing, err := ws.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in, rec, err := s.bind(c, existing, true)
	if err != nil {
		return nil, err
	}
	form := services.NewProductForm(ws.ProductRepo, ws.Images(), services.UpdateMode(id), existing, ws.Logger(), s.formOptions()...)
	if in.Images != nil {
		form.ApplyImages(in.Images)
	}
	return form.Submit(ctx, rec)
}

func screens(ws *services.Workspace) map[string]screen {
	return map[string]screen{
		"products": productScreen{&entityScreen[models.Product, models.ProductInput]{
			ws: ws, list: ws.ProductList, store: ws.ProductRepo, columns: services.ProductColumns, name: "products", fill: models.ProductInputFrom,
		}},
		"categories": &entityScreen[models.Category, models.CategoryInput]{
			ws: ws, list: ws.CategoryList, store: ws.CategoryRepo, columns: services.CategoryColumns, name: "categories", fill: models.CategoryInputFrom,
		},
		"customers": &entityScreen[models.Customer, models.CustomerInput]{
			ws: ws, list: ws.CustomerList, store: ws.CustomerRepo, columns: services.CustomerColumns, name: "customers", fill: models.CustomerInputFrom,
		},
		"employees": &entityScreen[models.Employee, models.EmployeeInput]{
			ws: ws, list: ws.EmployeeList, store: ws.EmployeeRepo, columns: services.EmployeeColumns, name: "employees", fill: models.EmployeeInputFrom,
		},
		"orders": &entityScreen[models.Order, models.OrderInput]{
			ws: ws, list: ws.OrderList, store: ws.OrderRepo, columns: services.OrderColumns, name: "orders", fill: models.OrderInputFrom,
		},
	}
}

type ManageController struct {
	MaxUploadSize int64
}

func lookupScreen(c *gin.Context) (screen, bool) {
	s, ok := screens(middleware.GetWorkspace(c))[c.Param("entity")]
	if !ok {
		respondError(c, &models.APIError{Status: http.StatusNotFound, Data: models.ErrorBody{
			Message: fmt.Sprintf("unknown entity %q", c.Param("entity")),
		}})
	}
	return s, ok
}

// @Summary Manage list
// @Description Fetches a page of products, categories, customers, employees or orders with the applied filters
// @Tags Manage
// @Produce json
// @Param entity path string true "Entity" Enums(products, categories, customers, employees, orders)
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /manage/{entity} [get]
func (ctrl *ManageController) List(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	if err := s.load(c.Request.Context(), queryInt(c, "page"), queryInt(c, "pageSize")); err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "List retrieved", s.view(), s.meta())
}

// @Summary Edit filters
// @Description Updates live filter fields without fetching
// @Tags Manage
// @Accept json
// @Produce json
// @Param entity path string true "Entity"
// @Param request body map[string]string true "Filter fields"
// @Success 200 {object} models.Response
// @Router /manage/{entity}/filters [put]
func (ctrl *ManageController) SetFilters(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	var filters map[string]string
	if err := bindJSON(c, &filters); err != nil {
		respondError(c, err)
		return
	}
	s.setFilters(filters)
	respond(c, http.StatusOK, "Filters updated", s.view())
}

// @Summary Apply filters
// @Description Snapshots the live filters, resets to page 1 and fetches
// @Tags Manage
// @Produce json
// @Param entity path string true "Entity"
// @Success 200 {object} models.PaginationResponse
// @Router /manage/{entity}/filters/apply [post]
func (ctrl *ManageController) ApplyFilters(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	if err := s.apply(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Filters applied", s.view(), s.meta())
}

// @Summary Toggle column sort
// @Description Cycles ascending and descending order of the fetched page by column
// @Tags Manage
// @Produce json
// @Param entity path string true "Entity"
// @Param column path string true "Column"
// @Success 200 {object} models.Response
// @Router /manage/{entity}/sort/{column} [post]
func (ctrl *ManageController) ToggleSort(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	if _, known := s.toggleSort(c.Param("column")); !known {
		respondError(c, fmt.Errorf("%w: unknown column %q", models.ErrValidation, c.Param("column")))
		return
	}
	respond(c, http.StatusOK, "Sort updated", s.view())
}

// @Summary Create record
// @Tags Manage
// @Accept json
// @Produce json
// @Param entity path string true "Entity"
// @Success 201 {object} models.Response
// @Router /manage/{entity} [post]
func (ctrl *ManageController) Create(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	rec, err := s.create(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Created", rec)
}

// @Summary Update record
// @Tags Manage
// @Accept json
// @Produce json
// @Param entity path string true "Entity"
// @Param id path int true "Record ID"
// @Success 200 {object} models.Response
// @Router /manage/{entity}/{id} [put]
func (ctrl *ManageController) Update(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := s.update(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Updated", rec)
}

// @Summary Delete record
// @Tags Manage
// @Produce json
// @Param entity path string true "Entity"
// @Param id path int true "Record ID"
// @Success 200 {object} models.Response
// @Router /manage/{entity}/{id} [delete]
func (ctrl *ManageController) Delete(c *gin.Context) {
	s, ok := lookupScreen(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	msg := ws.Message("manage.deleted", "Deleted successfully")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusOK, msg, gin.H{"id": id})
}

// @Summary Upload product image
// @Description Uploads one image file for a product, to Cloudinary when configured
// @Tags Manage
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param file formData file true "Image file"
// @Param isPrimary formData bool false "Make primary"
// @Success 201 {object} models.Response
// @Router /manage/products/{id}/images [post]
func (ctrl *ManageController) UploadProductImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, fmt.Errorf("%w: file is required", models.ErrValidation))
		return
	}
	if err := utils.ValidateImageFile(header.Filename, header.Size, ctrl.MaxUploadSize); err != nil {
		respondError(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	ws := middleware.GetWorkspace(c)
	ctx := c.Request.Context()
	existing, err := ws.ProductRepo.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	form := services.NewProductForm(ws.ProductRepo, ws.Images(), services.UpdateMode(id), existing, ws.Logger())
	form.AddUpload(header.Filename, data, c.PostForm("isPrimary") == "true")
	images, err := form.SyncImages(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = ws.ProductList.FetchPage(ctx)

	msg := ws.Message("manage.imageUploaded", "Image uploaded")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusCreated, msg, images)
}
