package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOrderRepository(db *gorm.DB, log *zap.Logger) repository.OrderRepository {
	return &orderRepo{db: db, log: log}
}

// Create inserts the order and its items in one statement group; gorm wraps
// association writes in a transaction.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		return errors.New("order id must be assigned before save")
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.log.Error("order create failed", zap.String("order_id", order.ID), zap.Error(err))
		return err
	}
	r.log.Debug("order saved", zap.String("order_id", order.ID), zap.Int("items", len(order.Items)))
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("order lookup failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []domain.Order
	if err := q.Find(&out).Error; err != nil {
		r.log.Error("order list failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.List(ctx, domain.OrderFilter{})
}

func (r *orderRepo) VerifyPaymentIf(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND payment_status = ? AND status <> ?", id, domain.PaymentPending, domain.StatusCancelled).
		Updates(map[string]any{
			"payment_status": domain.PaymentVerified,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				domain.StatusPending, domain.StatusConfirmed),
		})
	if res.Error != nil {
		r.log.Error("payment verify failed", zap.String("order_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) RejectPaymentIf(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentPending).
		Update("payment_status", domain.PaymentFailed)
	if res.Error != nil {
		r.log.Error("payment reject failed", zap.String("order_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) UpdateStatusIf(ctx context.Context, id string, from []domain.OrderStatus, to domain.OrderStatus, trackingNumber *string) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	updates := map[string]any{"status": to}
	if trackingNumber != nil {
		updates["tracking_number"] = *trackingNumber
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		r.log.Error("status update failed", zap.String("order_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) SetReceiptIf(ctx context.Context, id string, ref string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentPending).
		Update("payment_receipt_ref", ref)
	if res.Error != nil {
		r.log.Error("receipt update failed", zap.String("order_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
