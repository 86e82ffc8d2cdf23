package services

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/store"
)

// CartService is the cart aggregator: a list of lines keyed by product id,
// persisted in full after every mutation. Persistence failures are logged
// and never returned.
type CartService struct {
	mu     sync.Mutex
	state  *store.State
	items  []models.CartItem
	logger *zap.Logger
}

// NewCartService loads the persisted cart; unreadable or corrupt state starts empty.
func NewCartService(ctx context.Context, state *store.State, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	items, err := state.LoadCart(ctx)
	if err != nil {
		logger.Warn("Failed to load cart, starting empty", zap.String("namespace", state.Namespace()), zap.Error(err))
		items = []models.CartItem{}
	}
	return &CartService{state: state, items: items, logger: logger}
}

func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *CartService) Item(productID int) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(productID); i >= 0 {
		return s.items[i], true
	}
	return models.CartItem{}, false
}

// Count is the total number of units across lines.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *CartService) Subtotal() decimal.Decimal {
	return CartTotal(s.Items())
}

// AddToCart merges into an existing line by adding quantity; the line keeps
// its original price, name and image snapshot.
func (s *CartService) AddToCart(ctx context.Context, productID, quantity int, price float64, imageURL, productName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(productID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, models.CartItem{
			ProductID:   productID,
			Quantity:    quantity,
			Price:       price,
			ImageURL:    imageURL,
			ProductName: productName,
		})
	}
	s.persist(ctx)
}

// UpdateQuantity adds a signed delta; a result of zero or less drops the line.
func (s *CartService) UpdateQuantity(ctx context.Context, productID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	if q := s.items[i].Quantity + delta; q <= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	} else {
		s.items[i].Quantity = q
	}
	s.persist(ctx)
}

func (s *CartService) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.DeleteFunc(s.items, func(it models.CartItem) bool { return it.ProductID == productID })
	s.persist(ctx)
}

func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.CartItem{}
	s.persist(ctx)
}

// Reset drops the in-memory lines without persisting, for when the
// underlying storage was already wiped.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.CartItem{}
}

func (s *CartService) indexOf(productID int) int {
	return slices.IndexFunc(s.items, func(it models.CartItem) bool { return it.ProductID == productID })
}

func (s *CartService) persist(ctx context.Context) {
	if err := s.state.SaveCart(ctx, s.items); err != nil {
		s.logger.Warn("Failed to save cart", zap.String("namespace", s.state.Namespace()), zap.Error(err))
	}
}

// CartTotal sums price snapshot times quantity in decimal arithmetic.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
