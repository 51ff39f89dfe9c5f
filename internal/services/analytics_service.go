package services

import (
	"context"
	"time"

	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"golang.org/x/sync/errgroup"
)

type AnalyticsService struct {
	orders   repository.OrderRepository
	expenses repository.ExpenseRepository
	catalog  catalog.Reader
	loc      *time.Location
	now      func() time.Time
}

func NewAnalyticsService(o repository.OrderRepository, e repository.ExpenseRepository, c catalog.Reader, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{orders: o, expenses: e, catalog: c, loc: loc, now: time.Now}
}

// Summary reads orders, expenses and products once each and derives every
// figure from that snapshot.
func (s *AnalyticsService) Summary(ctx context.Context, admin domain.Principal, days int) (*domain.Report, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	var (
		orders   []domain.Order
		expenses []domain.Expense
		products []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.ListProducts(gctx, domain.ProductFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := domain.BuildReport(orders, expenses, products, s.now(), days, s.loc)
	return &report, nil
}
