package services

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/utils"
)

// Fetcher loads one page of a collection for the given query string.
type Fetcher[T any] func(ctx context.Context, query url.Values) (models.PagedResult[T], error)

// ListQuery builds the pageNumber/pageSize/filter query string. Blank
// filters are left out.
type ListQuery struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("pageNumber", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	for field, value := range q.Filters {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(field, value)
		}
	}
	return v
}

type ListView[T any] struct {
	Items          []T               `json:"items"`
	Page           int               `json:"page"`
	PageSize       int               `json:"pageSize"`
	TotalCount     int               `json:"totalCount"`
	TotalPages     int               `json:"totalPages"`
	Filters        map[string]string `json:"filters"`
	AppliedFilters map[string]string `json:"appliedFilters"`
	Sort           utils.SortState   `json:"sort"`
	Loading        bool              `json:"loading"`
}

type ListOption[T any] func(*ListController[T])

// WithErrorHandler routes fetch failures (other than 404) to fn.
func WithErrorHandler[T any](fn func(error)) ListOption[T] {
	return func(c *ListController[T]) { c.onError = fn }
}

func WithColumns[T any](columns map[string]utils.Comparator[T]) ListOption[T] {
	return func(c *ListController[T]) { c.columns = columns }
}

// WithInitialFilters seeds both the live and the applied filters.
func WithInitialFilters[T any](filters map[string]string) ListOption[T] {
	return func(c *ListController[T]) {
		c.filters = maps.Clone(filters)
		c.applied = maps.Clone(filters)
	}
}

func WithListLogger[T any](logger *zap.Logger) ListOption[T] {
	return func(c *ListController[T]) { c.logger = logger }
}

// ListController holds the paging, filter and sort state of one collection
// screen. Live filter edits stay local until ApplyFilters snapshots them.
// Only the newest in-flight fetch may update state; older responses are dropped.
type ListController[T any] struct {
	mu      sync.Mutex
	fetch   Fetcher[T]
	onError func(error)
	columns map[string]utils.Comparator[T]
	logger  *zap.Logger

	page       int
	pageSize   int
	totalCount int
	items      []T
	filters    map[string]string
	applied    map[string]string
	sort       utils.SortState
	generation uint64
	loading    bool
}

func NewListController[T any](fetch Fetcher[T], pageSize int, opts ...ListOption[T]) *ListController[T] {
	if pageSize < 1 {
		pageSize = 10
	}
	c := &ListController[T]{
		fetch:    fetch,
		onError:  func(error) {},
		logger:   zap.NewNop(),
		page:     1,
		pageSize: pageSize,
		items:    []T{},
		filters:  map[string]string{},
		applied:  map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFilter edits a live filter field. It never fetches.
func (c *ListController[T]) SetFilter(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters[field] = value
}

// ApplyFilters snapshots the live filters, resets to page 1 and fetches.
func (c *ListController[T]) ApplyFilters(ctx context.Context) error {
	c.mu.Lock()
	c.applied = maps.Clone(c.filters)
	c.page = 1
	c.mu.Unlock()
	return c.FetchPage(ctx)
}

// SubmitFilter is the Enter-key path: edit one field, then apply.
func (c *ListController[T]) SubmitFilter(ctx context.Context, field, value string) error {
	c.SetFilter(field, value)
	return c.ApplyFilters(ctx)
}

func (c *ListController[T]) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filters = map[string]string{}
	c.mu.Unlock()
	return c.ApplyFilters(ctx)
}

// SetPage moves to page and fetches. Pages past the end are not clamped.
func (c *ListController[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.FetchPage(ctx)
}

func (c *ListController[T]) SetPageSize(ctx context.Context, size int) error {
	if size < 1 {
		size = 1
	}
	c.mu.Lock()
	c.pageSize = size
	c.page = 1
	c.mu.Unlock()
	return c.FetchPage(ctx)
}

// FetchPage loads the current page with the applied filters. A 404 means
// an empty result, not an error.
func (c *ListController[T]) FetchPage(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	query := ListQuery{Page: c.page, PageSize: c.pageSize, Filters: maps.Clone(c.applied)}
	c.loading = true
	c.mu.Unlock()

	result, err := c.fetch(ctx, query.Values())

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale list response", zap.Uint64("generation", gen))
		return nil
	}
	c.loading = false

	if err != nil {
		if models.StatusOf(err) == http.StatusNotFound {
			c.items = []T{}
			c.totalCount = 0
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()
		c.onError(err)
		return err
	}

	c.items = result.Items
	if c.items == nil {
		c.items = []T{}
	}
	c.totalCount = result.TotalCount
	c.mu.Unlock()
	return nil
}

// ToggleSort cycles the column header state; sorting applies to the
// fetched page only.
func (c *ListController[T]) ToggleSort(column string) utils.SortState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = c.sort.Toggle(column)
	return c.sort
}

func (c *ListController[T]) Columns() []string {
	cols := slices.Collect(maps.Keys(c.columns))
	slices.Sort(cols)
	return cols
}

func (c *ListController[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return utils.TotalPages(c.totalCount, c.pageSize)
}

func (c *ListController[T]) View() ListView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListView[T]{
		Items:          utils.SortedCopy(c.items, c.sort, c.columns),
		Page:           c.page,
		PageSize:       c.pageSize,
		TotalCount:     c.totalCount,
		TotalPages:     utils.TotalPages(c.totalCount, c.pageSize),
		Filters:        maps.Clone(c.filters),
		AppliedFilters: maps.Clone(c.applied),
		Sort:           c.sort,
		Loading:        c.loading,
	}
}
