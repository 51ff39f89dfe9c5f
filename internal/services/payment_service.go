package services

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

// PaymentService reconciles customer-claimed payments. Both transitions are
// single conditional updates on payment_status = pending.
type PaymentService struct {
	repo   repository.OrderRepository
	events *Dispatcher
	log    *zap.Logger
}

func NewPaymentService(r repository.OrderRepository, d *Dispatcher, log *zap.Logger) *PaymentService {
	return &PaymentService{repo: r, events: d, log: log}
}

func (s *PaymentService) VerifyPayment(ctx context.Context, admin domain.Principal, orderID string) (*domain.Order, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	ok, err := s.repo.VerifyPaymentIf(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, explainRejected(ctx, s.repo, orderID)
	}

	s.log.Info("payment verified", zap.String("order_id", orderID), zap.String("admin_id", admin.ID))

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil || o == nil {
		// The transition is committed; only the side effects are lost. Status
		// is left blank since verification keeps an already advanced status.
		s.log.Error("verified order reload failed, skipping notifications", zap.String("order_id", orderID), zap.Error(err))
		return &domain.Order{ID: orderID, PaymentStatus: domain.PaymentVerified}, nil
	}

	s.events.Notify(orderNotification(o, domain.NotifyPaymentVerified))
	s.events.Invoice(o)
	return o, nil
}

func (s *PaymentService) RejectPayment(ctx context.Context, admin domain.Principal, orderID string) (*domain.Order, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	ok, err := s.repo.RejectPaymentIf(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, explainRejected(ctx, s.repo, orderID)
	}

	s.log.Info("payment rejected", zap.String("order_id", orderID), zap.String("admin_id", admin.ID))

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil || o == nil {
		s.log.Error("rejected order reload failed, skipping notifications", zap.String("order_id", orderID), zap.Error(err))
		return &domain.Order{ID: orderID, PaymentStatus: domain.PaymentFailed}, nil
	}

	s.events.Notify(orderNotification(o, domain.NotifyPaymentRejected))
	return o, nil
}
