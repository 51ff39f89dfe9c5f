package services

import (
	"context"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenseInput records money out (positive) or manual income (negative).
type ExpenseInput struct {
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	PaymentDate time.Time `json:"paymentDate"`
}

type ExpenseService struct {
	repo repository.ExpenseRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewExpenseService(r repository.ExpenseRepository, log *zap.Logger) *ExpenseService {
	return &ExpenseService{repo: r, log: log, now: time.Now}
}

func (s *ExpenseService) RecordExpense(ctx context.Context, admin domain.Principal, in ExpenseInput) (*domain.Expense, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.Category) == "" {
		verr.Add("category", "required")
	}
	if in.Amount == 0 {
		verr.Add("amount", "must not be zero")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := s.now()
	paid := in.PaymentDate
	if paid.IsZero() {
		paid = now
	}
	e := &domain.Expense{
		ID:          uuid.NewString(),
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		PaymentDate: paid,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.log.Info("ledger entry recorded",
		zap.String("expense_id", e.ID),
		zap.String("category", e.Category),
		zap.Int64("amount", e.Amount),
		zap.Bool("income", e.IsIncome()))
	return e, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, admin domain.Principal) ([]domain.Expense, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListAll(ctx)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, admin domain.Principal, id string) error {
	if !admin.IsAdmin() {
		return domain.ErrUnauthorized
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrExpenseNotFound
	}
	s.log.Info("ledger entry deleted", zap.String("expense_id", id), zap.String("admin_id", admin.ID))
	return nil
}
