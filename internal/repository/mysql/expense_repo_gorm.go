package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type expenseRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewExpenseRepository(db *gorm.DB, log *zap.Logger) repository.ExpenseRepository {
	return &expenseRepo{db: db, log: log}
}

func (r *expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		r.log.Error("expense create failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *expenseRepo) ListAll(ctx context.Context) ([]domain.Expense, error) {
	var out []domain.Expense
	if err := r.db.WithContext(ctx).Order("payment_date DESC, created_at DESC").Find(&out).Error; err != nil {
		r.log.Error("expense list failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *expenseRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Expense{}, "id = ?", id)
	if res.Error != nil {
		r.log.Error("expense delete failed", zap.String("expense_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
