package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
	"storefront/store"
)

// Dependencies are shared by every workspace.
type Dependencies struct {
	Backend         store.Backend
	Gateway         *libs.Gateway
	Translator      *Translator
	Images          ImageHost
	Mailer          ReceiptSender
	PageSize        int
	DefaultLanguage string
	Logger          *zap.Logger
}

// Workspace is everything one visitor's browser would hold: persisted
// state, cart, session and the list screens, all talking to the backend
// with that visitor's token.
type Workspace struct {
	ID    string
	State *store.State
	Cart  *CartService
	// Session also supplies the bearer token of every backend call.
	Session *SessionService
	Orders  *OrderService

	ProductRepo  *repositories.ProductRepository
	CategoryRepo *repositories.CategoryRepository
	CustomerRepo *repositories.CustomerRepository
	EmployeeRepo *repositories.EmployeeRepository
	OrderRepo    *repositories.OrderRepository

	Catalog      *ListController[models.Product]
	ProductList  *ListController[models.Product]
	CategoryList *ListController[models.Category]
	CustomerList *ListController[models.Customer]
	EmployeeList *ListController[models.Employee]
	OrderList    *ListController[models.Order]

	deps     Dependencies
	logger   *zap.Logger
	mu       sync.Mutex
	lang     string
	alerts   []models.Alert
	lastSeen time.Time
}

func NewWorkspace(ctx context.Context, id string, deps Dependencies) *Workspace {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("workspace", id))

	ws := &Workspace{ID: id, deps: deps, logger: logger, lastSeen: time.Now()}
	ws.State = store.NewState(store.NewLocal(deps.Backend, id))
	gw := deps.Gateway.WithTokenSource(ws)

	ws.ProductRepo = repositories.NewProductRepository(gw)
	ws.CategoryRepo = repositories.NewCategoryRepository(gw)
	ws.CustomerRepo = repositories.NewCustomerRepository(gw)
	ws.EmployeeRepo = repositories.NewEmployeeRepository(gw)
	ws.OrderRepo = repositories.NewOrderRepository(gw)

	ws.Cart = NewCartService(ctx, ws.State, logger)
	ws.Session = NewSessionService(ctx, ws.State, repositories.NewAuthRepository(gw), ws.CustomerRepo, ws.EmployeeRepo, ws.Cart, logger)
	ws.Orders = NewOrderService(ws.OrderRepo, deps.Mailer, logger)

	ws.lang = deps.DefaultLanguage
	if lang, err := ws.State.Language(ctx); err == nil && lang != "" {
		ws.lang = lang
	}

	size := deps.PageSize
	ws.Catalog = NewListController[models.Product](ws.ProductRepo.List, size,
		WithErrorHandler[models.Product](ws.reportError),
		WithColumns[models.Product](ProductColumns),
		WithListLogger[models.Product](logger),
		WithInitialFilters[models.Product](map[string]string{"isActive": "true"}))
	ws.ProductList = NewListController[models.Product](ws.ProductRepo.List, size,
		WithErrorHandler[models.Product](ws.reportError),
		WithColumns[models.Product](ProductColumns),
		WithListLogger[models.Product](logger))
	ws.CategoryList = NewListController[models.Category](ws.CategoryRepo.List, size,
		WithErrorHandler[models.Category](ws.reportError),
		WithColumns[models.Category](CategoryColumns),
		WithListLogger[models.Category](logger))
	ws.CustomerList = NewListController[models.Customer](ws.CustomerRepo.List, size,
		WithErrorHandler[models.Customer](ws.reportError),
		WithColumns[models.Customer](CustomerColumns),
		WithListLogger[models.Customer](logger))
	ws.EmployeeList = NewListController[models.Employee](ws.EmployeeRepo.List, size,
		WithErrorHandler[models.Employee](ws.reportError),
		WithColumns[models.Employee](EmployeeColumns),
		WithListLogger[models.Employee](logger))
	ws.OrderList = NewListController[models.Order](ws.OrderRepo.List, size,
		WithErrorHandler[models.Order](ws.reportError),
		WithColumns[models.Order](OrderColumns),
		WithListLogger[models.Order](logger))
	return ws
}

// Token implements libs.TokenSource through the session.
func (w *Workspace) Token() string {
	if w.Session == nil {
		return ""
	}
	return w.Session.Token()
}

func (w *Workspace) Translator() *Translator { return w.deps.Translator }

func (w *Workspace) Images() ImageHost { return w.deps.Images }

func (w *Workspace) Logger() *zap.Logger { return w.logger }

func (w *Workspace) Language() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lang
}

func (w *Workspace) SetLanguage(ctx context.Context, lang string) error {
	if err := w.State.SaveLanguage(ctx, lang); err != nil {
		return err
	}
	w.mu.Lock()
	w.lang = lang
	w.mu.Unlock()
	return nil
}

// T translates key in the visitor's language.
func (w *Workspace) T(key string) string {
	return w.deps.Translator.T(w.Language(), key)
}

func (w *Workspace) Message(key, def string) string {
	return w.deps.Translator.Message(w.Language(), key, def)
}

func (w *Workspace) ErrorAlert(err error) models.Alert {
	return ErrorAlert(w.deps.Translator, w.Language(), err)
}

// Logout clears the session and all persisted state, language included.
func (w *Workspace) Logout(ctx context.Context) error {
	err := w.Session.Logout(ctx)
	w.mu.Lock()
	w.lang = w.deps.DefaultLanguage
	w.mu.Unlock()
	return err
}

func (w *Workspace) reportError(err error) {
	w.PushAlert(w.ErrorAlert(err))
}

func (w *Workspace) PushAlert(a models.Alert) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alerts = append(w.alerts, a)
}

// TakeAlerts returns and clears the pending alerts.
func (w *Workspace) TakeAlerts() []models.Alert {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.alerts
	w.alerts = nil
	return out
}

func (w *Workspace) touch() {
	w.mu.Lock()
	w.lastSeen = time.Now()
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// WorkspaceRegistry keeps one workspace per visitor id. Evicted
// workspaces are rebuilt from persisted state on the next request.
type WorkspaceRegistry struct {
	mu    sync.Mutex
	deps  Dependencies
	items map[string]*Workspace
	// building collapses concurrent first requests of one visitor.
	building singleflight.Group
}

func NewWorkspaceRegistry(deps Dependencies) *WorkspaceRegistry {
	if deps.Translator == nil {
		deps.Translator = NewTranslator(deps.DefaultLanguage)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &WorkspaceRegistry{deps: deps, items: make(map[string]*Workspace)}
}

// Get returns the workspace of visitor id, restoring it from persisted state
// when it is not cached. Restoring does backend I/O outside the registry lock.
func (r *WorkspaceRegistry) Get(ctx context.Context, id string) *Workspace {
	if ws := r.lookup(id); ws != nil {
		return ws
	}
	v, _, _ := r.building.Do(id, func() (interface{}, error) {
		if ws := r.lookup(id); ws != nil {
			return ws, nil
		}
		ws := NewWorkspace(ctx, id, r.deps)
		r.mu.Lock()
		if cur, ok := r.items[id]; ok {
			ws = cur
		} else {
			r.items[id] = ws
		}
		r.mu.Unlock()
		return ws, nil
	})
	ws := v.(*Workspace)
	ws.touch()
	return ws
}

func (r *WorkspaceRegistry) lookup(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.items[id]
	if !ok {
		return nil
	}
	ws.touch()
	return ws
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep evicts workspaces idle for longer than maxIdle and reports how many.
func (r *WorkspaceRegistry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, ws := range r.items {
		if ws.idleSince().Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *WorkspaceRegistry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.deps.Logger.Debug("Evicted idle workspaces", zap.Int("count", n))
			}
		}
	}
}
