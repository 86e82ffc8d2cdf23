package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/libs"
	"storefront/middleware"
	"storefront/models"
	"storefront/services"
	"storefront/store"
)

type fakeBackend struct {
	mu       sync.Mutex
	token    string
	empToken string
	queries  []string
	created  []models.Category
	orders   []models.Order
	items    []models.OrderItem
	authSeen []string
	puts     map[string]map[string]interface{}
	uploads  []url.Values
	patches  []string
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /API/ProductsAPI", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.PagedResult[models.Product]{
			TotalCount: 95,
			Items:      []models.Product{{ID: 1, Name: "Latte", SellingPrice: 3.5, IsActive: true}},
		})
	})
	mux.HandleFunc("GET /API/CategoriesAPI", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.RawQuery)
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found"})
	})
	mux.HandleFunc("POST /API/CategoriesAPI", func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		b.mu.Lock()
		c.ID = 40 + len(b.created)
		b.created = append(b.created, c)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, c)
	})
	mux.HandleFunc("GET /API/EmployeesAPI", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "database unavailable")
	})
	mux.HandleFunc("POST /API/EmployeesAPI/LoginByEmail", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.TokenResponse{Token: b.empToken})
	})
	mux.HandleFunc("GET /API/EmployeesAPI/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Employee{ID: 3, Username: "boss", Role: models.RoleAdmin})
	})
	mux.HandleFunc("POST /API/CustomersAPI/LoginByEmail", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] != "ana@example.com" || body["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, models.TokenResponse{Token: b.token})
	})
	mux.HandleFunc("GET /API/CustomersAPI/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Customer{ID: 12, FirstName: "Ana", Email: "ana@example.com", Password: "hash"})
	})
	mux.HandleFunc("POST /API/OrdersAPI", func(w http.ResponseWriter, r *http.Request) {
		var o models.Order
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&o))
		b.mu.Lock()
		b.authSeen = append(b.authSeen, r.Header.Get("Authorization"))
		o.ID = 500
		b.orders = append(b.orders, o)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, o)
	})
	mux.HandleFunc("POST /API/OrderItemsAPI", func(w http.ResponseWriter, r *http.Request) {
		var it models.OrderItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&it))
		b.mu.Lock()
		it.ID = len(b.items) + 1
		b.items = append(b.items, it)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, it)
	})
	mux.HandleFunc("GET /API/OrdersAPI", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.PagedResult[models.Order]{Items: []models.Order{}})
	})
	mux.HandleFunc("GET /API/OrdersAPI/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Order{
			ID: 5, CustomerID: 12, TotalAmount: 42.5, Status: models.OrderStatusPending,
			OrderDate:       models.Timestamp{Time: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
			ShippingAddress: "Jl. Kopi 1",
		})
	})
	mux.HandleFunc("GET /API/ProductsAPI/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Product{
			ID: 1, Name: "Latte", InitialPrice: 2, SellingPrice: 3.5, CategoryID: 4, StockQuantity: 10, IsActive: true,
			Images: []models.ProductImage{{ID: 11, ProductID: 1, ImageURL: "a.png", IsPrimary: true}},
		})
	})
	recordPut := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		if b.puts == nil {
			b.puts = map[string]map[string]interface{}{}
		}
		b.puts[r.URL.Path] = body
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	}
	mux.HandleFunc("PUT /API/OrdersAPI/{id}", recordPut)
	mux.HandleFunc("PUT /API/ProductsAPI/{id}", recordPut)
	mux.HandleFunc("PATCH /API/ProductImagesAPI/{id}", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.patches = append(b.patches, r.PathValue("id")+" "+strings.TrimSpace(string(raw)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /API/ProductImagesAPI/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		assert.NoError(t, err)
		b.mu.Lock()
		b.uploads = append(b.uploads, r.MultipartForm.Value)
		b.mu.Unlock()
		productID, _ := strconv.Atoi(r.FormValue("productId"))
		writeJSON(w, http.StatusCreated, models.ProductImage{
			ID: 77, ProductID: productID, ImageURL: "/uploads/" + header.Filename, IsPrimary: r.FormValue("isPrimary") == "true",
		})
	})
	return mux
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"nameid": "12"}).SignedString([]byte("k"))
	require.NoError(t, err)
	empToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "3"}).SignedString([]byte("k"))
	require.NoError(t, err)
	backend := &fakeBackend{token: token, empToken: empToken}
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	registry := services.NewWorkspaceRegistry(services.Dependencies{
		Backend:         store.NewMemoryBackend(),
		Gateway:         libs.NewGateway(srv.URL, 2*time.Second, nil),
		PageSize:        10,
		DefaultLanguage: "en",
	})
	router := gin.New()
	router.Use(middleware.RequestID())
	SetupRoutes(router, Options{Registry: registry, MaxUploadSize: 1 << 20})
	return router, backend
}

type visitor struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Meta    models.PaginationMeta `json:"meta"`
	Alert   *models.Alert         `json:"alert"`
}

func (v *visitor) do(method, path string, body interface{}) (int, envelope) {
	v.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(v.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	w := httptest.NewRecorder()
	v.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.WorkspaceCookie {
			v.cookie = c
		}
	}
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(v.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCartFlowIsPerVisitor(t *testing.T) {
	router, _ := setupRouter(t)
	alice := &visitor{t: t, router: router}
	bob := &visitor{t: t, router: router}

	code, _ := alice.do(http.MethodPost, "/cart/items", models.AddToCartRequest{ProductID: 1, Quantity: 2, Price: 3.5, ProductName: "Latte"})
	require.Equal(t, http.StatusOK, code)
	code, env := alice.do(http.MethodPost, "/cart/items", models.AddToCartRequest{ProductID: 1, Quantity: 1, Price: 9, ProductName: "Other"})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Alert)
	assert.Equal(t, models.AlertSuccess, env.Alert.Kind)

	var cart struct {
		Items    []models.CartItem `json:"items"`
		Count    int               `json:"count"`
		Subtotal string            `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, 3.5, cart.Items[0].Price)
	assert.Equal(t, "10.5", cart.Subtotal)

	_, env = bob.do(http.MethodGet, "/cart", nil)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Empty(t, cart.Items)

	_, env = alice.do(http.MethodPatch, "/cart/items/1", models.UpdateQuantityRequest{Delta: -3})
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Empty(t, cart.Items)
}

func TestCheckoutRequiresCustomerThenSucceeds(t *testing.T) {
	router, backend := setupRouter(t)
	v := &visitor{t: t, router: router}

	v.do(http.MethodPost, "/cart/items", models.AddToCartRequest{ProductID: 1, Quantity: 2, Price: 3.5, ProductName: "Latte"})

	code, env := v.do(http.MethodPost, "/cart/checkout", models.CheckoutRequest{ShippingAddress: "Jl. Kopi 1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Alert)
	assert.Equal(t, models.AlertError, env.Alert.Kind)

	code, env = v.do(http.MethodPost, "/auth/login", models.LoginRequest{Identifier: "ana@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = v.do(http.MethodPost, "/auth/login", models.LoginRequest{Identifier: "ana@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, code)
	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.True(t, session.LoggedIn)
	assert.Equal(t, "customer", session.UserType)
	assert.Empty(t, session.Customer.Password)

	code, _ = v.do(http.MethodPost, "/cart/checkout", models.CheckoutRequest{ShippingAddress: "Jl. Kopi 1"})
	require.Equal(t, http.StatusCreated, code)

	require.Len(t, backend.orders, 1)
	assert.Equal(t, models.OrderStatusPending, backend.orders[0].Status)
	assert.Equal(t, 7.0, backend.orders[0].TotalAmount)
	assert.Equal(t, "Bearer "+backend.token, backend.authSeen[0])
	require.Len(t, backend.items, 1)
	assert.Equal(t, 500, backend.items[0].OrderID)

	_, env = v.do(http.MethodGet, "/cart", nil)
	assert.Contains(t, string(env.Data), `"items":[]`)

	code, _ = v.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, code)
	_, env = v.do(http.MethodGet, "/auth/me", nil)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.False(t, session.LoggedIn)
}

func TestProductListingPagination(t *testing.T) {
	router, _ := setupRouter(t)
	v := &visitor{t: t, router: router}

	code, env := v.do(http.MethodGet, "/products?page=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 10, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.TotalPages)
	assert.Equal(t, 95, env.Meta.TotalItems)
}

func TestCategoriesNotFoundIsEmpty(t *testing.T) {
	router, _ := setupRouter(t)
	v := &visitor{t: t, router: router}

	code, env := v.do(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestManageRequiresEmployee(t *testing.T) {
	router, _ := setupRouter(t)
	v := &visitor{t: t, router: router}

	code, env := v.do(http.MethodGet, "/manage/products", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestStaticPagesAndLocale(t *testing.T) {
	router, _ := setupRouter(t)
	v := &visitor{t: t, router: router}

	code, env := v.do(http.MethodGet, "/pages/faq", nil)
	require.Equal(t, http.StatusOK, code)
	var page models.PageContent
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "faq", page.Slug)
	assert.Equal(t, "Faq", page.Title)

	code, _ = v.do(http.MethodGet, "/pages/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = v.do(http.MethodPost, "/locale", models.LocaleRequest{Language: "id"})
	require.Equal(t, http.StatusOK, code)
	_, env = v.do(http.MethodGet, "/auth/me", nil)
	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "id", session.Language)
}

func TestManageScreens(t *testing.T) {
	router, backend := setupRouter(t)
	v := &visitor{t: t, router: router}

	code, env := v.do(http.MethodPost, "/auth/login", models.LoginRequest{Identifier: "boss@example.com", Password: "pw", AsEmployee: true})
	require.Equal(t, http.StatusOK, code)
	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.True(t, session.IsAdmin)

	code, env = v.do(http.MethodGet, "/manage/employees", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "database unavailable", env.Message)

	code, env = v.do(http.MethodGet, "/manage/categories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, env.Alert)
	assert.Zero(t, env.Meta.TotalItems)

	code, env = v.do(http.MethodPut, "/manage/categories/filters", map[string]string{"name": "tea"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"appliedFilters":{}`)
	assert.Len(t, backend.queries, 1)

	code, _ = v.do(http.MethodPost, "/manage/categories/filters/apply", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, backend.queries, 2)
	assert.Contains(t, backend.queries[1], "name=tea")
	assert.Contains(t, backend.queries[1], "pageNumber=1")

	code, env = v.do(http.MethodPost, "/manage/categories", map[string]interface{}{"name": "Tea", "parentId": "2", "isActive": true})
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, env.Alert)
	assert.Equal(t, models.AlertSuccess, env.Alert.Kind)
	require.Len(t, backend.created, 1)
	require.NotNil(t, backend.created[0].ParentID)
	assert.Equal(t, 2, *backend.created[0].ParentID)

	code, _ = v.do(http.MethodPost, "/manage/categories/sort/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = v.do(http.MethodPost, "/manage/categories/sort/name", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = v.do(http.MethodGet, "/manage/widgets", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func employeeVisitor(t *testing.T, router *gin.Engine) *visitor {
	t.Helper()
	v := &visitor{t: t, router: router}
	code, _ := v.do(http.MethodPost, "/auth/login", models.LoginRequest{Identifier: "boss@example.com", Password: "pw", AsEmployee: true})
	require.Equal(t, http.StatusOK, code)
	return v
}

func TestManageUpdateKeepsStoredFields(t *testing.T) {
	router, backend := setupRouter(t)
	v := employeeVisitor(t, router)

	code, env := v.do(http.MethodPut, "/manage/orders/5", map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Alert)
	assert.Equal(t, models.AlertSuccess, env.Alert.Kind)

	order := backend.puts["/API/OrdersAPI/5"]
	require.NotNil(t, order)
	assert.Equal(t, "Shipped", order["status"])
	assert.EqualValues(t, 5, order["id"])
	assert.EqualValues(t, 12, order["customerId"])
	assert.EqualValues(t, 42.5, order["totalAmount"])
	assert.Equal(t, "2024-03-01T09:30:00Z", order["orderDate"])
	assert.Equal(t, "Jl. Kopi 1", order["shippingAddress"])

	code, _ = v.do(http.MethodPut, "/manage/products/1", map[string]string{"name": "Latte Large"})
	require.Equal(t, http.StatusOK, code)
	product := backend.puts["/API/ProductsAPI/1"]
	require.NotNil(t, product)
	assert.Equal(t, "Latte Large", product["name"])
	assert.EqualValues(t, 1, product["id"])
	assert.EqualValues(t, 3.5, product["sellingPrice"])
	assert.EqualValues(t, 4, product["categoryId"])
	assert.EqualValues(t, 10, product["stockQuantity"])
	assert.Equal(t, true, product["isActive"])
	assert.Empty(t, backend.patches)
	assert.Empty(t, backend.uploads)

	code, _ = v.do(http.MethodPut, "/manage/orders/5", map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestManageUploadProductImage(t *testing.T) {
	router, backend := setupRouter(t)
	v := employeeVisitor(t, router)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "latte.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("isPrimary", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/manage/products/1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(v.cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var images []models.ProductImage
	require.NoError(t, json.Unmarshal(env.Data, &images))
	require.Len(t, images, 2)
	assert.False(t, images[0].IsPrimary)
	assert.Equal(t, 77, images[1].ID)
	assert.Equal(t, "/uploads/latte.png", images[1].ImageURL)
	assert.True(t, images[1].IsPrimary)

	assert.Equal(t, []string{`11 {"isPrimary":false}`}, backend.patches)
	require.Len(t, backend.uploads, 1)
	assert.Equal(t, []string{"1"}, backend.uploads[0]["productId"])
	assert.Equal(t, []string{"true"}, backend.uploads[0]["isPrimary"])

	req = httptest.NewRequest(http.MethodPost, "/manage/products/1/images", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.AddCookie(v.cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
