package repository

import (
	"context"

	"storefront-service/internal/domain"
)

// OrderRepository is the order record store. Conditional updates report
// whether their precondition held; a false result with a nil error means
// either the order is missing or it was in another state.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)

	// VerifyPaymentIf marks a pending payment verified and confirms a pending
	// order in the same statement. Cancelled orders are not matched.
	VerifyPaymentIf(ctx context.Context, id string) (bool, error)
	// RejectPaymentIf marks a pending payment failed; status is untouched.
	RejectPaymentIf(ctx context.Context, id string) (bool, error)
	// UpdateStatusIf sets status when the current status is one of from.
	UpdateStatusIf(ctx context.Context, id string, from []domain.OrderStatus, to domain.OrderStatus, trackingNumber *string) (bool, error)
	// SetReceiptIf records a payment proof while payment is still pending.
	SetReceiptIf(ctx context.Context, id string, ref string) (bool, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListAll(ctx context.Context) ([]domain.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	// UpdateRating reports false when a rating derived from more reviews is
	// already stored.
	UpdateRating(ctx context.Context, id uint64, rating *float64, count int) (bool, error)
}
