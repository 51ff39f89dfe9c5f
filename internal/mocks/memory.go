package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront-service/internal/domain"
)

// OrderStore is an in-memory order store with the same conditional-update
// semantics as the mysql repository.
type OrderStore struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]domain.Order)}
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

func (s *OrderStore) Create(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	c := cloneOrder(o)
	return &c, nil
}

func (s *OrderStore) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *OrderStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.List(ctx, domain.OrderFilter{})
}

func (s *OrderStore) VerifyPaymentIf(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.PaymentStatus != domain.PaymentPending || o.Status == domain.StatusCancelled {
		return false, nil
	}
	o.PaymentStatus = domain.PaymentVerified
	if o.Status == domain.StatusPending {
		o.Status = domain.StatusConfirmed
	}
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) RejectPaymentIf(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	o.PaymentStatus = domain.PaymentFailed
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) UpdateStatusIf(_ context.Context, id string, from []domain.OrderStatus, to domain.OrderStatus, trackingNumber *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, st := range from {
		if o.Status == st {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	o.Status = to
	if trackingNumber != nil {
		t := *trackingNumber
		o.TrackingNumber = &t
	}
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) SetReceiptIf(_ context.Context, id string, ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	o.PaymentReceiptRef = &ref
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// ExpenseStore is an in-memory expense ledger.
type ExpenseStore struct {
	mu       sync.Mutex
	expenses []domain.Expense
}

func NewExpenseStore(seed ...domain.Expense) *ExpenseStore {
	return &ExpenseStore{expenses: append([]domain.Expense(nil), seed...)}
}

func (s *ExpenseStore) Create(_ context.Context, e *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *ExpenseStore) ListAll(_ context.Context) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.Expense(nil), s.expenses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

func (s *ExpenseStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ReviewStore is an in-memory review collection.
type ReviewStore struct {
	mu      sync.Mutex
	reviews []domain.Review
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{}
}

func (s *ReviewStore) Create(_ context.Context, r *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *ReviewStore) ListByProduct(_ context.Context, productID uint64) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].ProductID == productID {
			out = append(out, s.reviews[i])
		}
	}
	return out, nil
}

// Catalog is an in-memory product catalog.
type Catalog struct {
	mu       sync.Mutex
	products map[uint64]domain.Product
}

func NewCatalog(products ...domain.Product) *Catalog {
	c := &Catalog{products: make(map[uint64]domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *Catalog) Put(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

func (c *Catalog) Delete(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

func (c *Catalog) GetProduct(_ context.Context, id uint64) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (c *Catalog) ListProducts(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.PublishedOnly && !p.Published() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Catalog) UpdateRating(_ context.Context, id uint64, rating *float64, count int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return false, domain.ErrProductNotFound
	}
	if count < p.ReviewCount {
		return false, nil
	}
	p.Rating = rating
	p.ReviewCount = count
	c.products[id] = p
	return true, nil
}
