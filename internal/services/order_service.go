package services

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

const defaultListLimit = 100

// OrderService serves order reads and the fulfillment state machine.
type OrderService struct {
	repo   repository.OrderRepository
	events *Dispatcher
	log    *zap.Logger
}

func NewOrderService(r repository.OrderRepository, d *Dispatcher, log *zap.Logger) *OrderService {
	return &OrderService{repo: r, events: d, log: log}
}

func (s *OrderService) GetOrderById(ctx context.Context, p domain.Principal, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !o.OwnedBy(p) && !p.IsAdmin() {
		// Do not reveal other customers' order ids.
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, p domain.Principal) ([]domain.Order, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, domain.OrderFilter{CustomerID: p.ID, Limit: defaultListLimit})
}

func (s *OrderService) ListOrders(ctx context.Context, admin domain.Principal, f domain.OrderFilter) ([]domain.Order, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	verr := &domain.ValidationError{}
	if f.Status != "" && !f.Status.Valid() {
		verr.Add("status", "unknown status")
	}
	if f.PaymentStatus != "" && !f.PaymentStatus.Valid() {
		verr.Add("paymentStatus", "unknown payment status")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if f.Limit <= 0 || f.Limit > defaultListLimit {
		f.Limit = defaultListLimit
	}
	return s.repo.List(ctx, f)
}

// UpdateStatus is the admin status override. Any non-terminal order may be
// moved to processing, shipped, delivered or cancelled.
func (s *OrderService) UpdateStatus(ctx context.Context, admin domain.Principal, id string, target domain.OrderStatus, trackingNumber *string) (*domain.Order, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if !target.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("status", "unknown status")
		return nil, verr
	}
	if !domain.CanAdminSet(domain.StatusPending, target) {
		return nil, fmt.Errorf("%w: %s cannot be set directly", domain.ErrInvalidTransition, target)
	}
	if trackingNumber != nil {
		t := strings.TrimSpace(*trackingNumber)
		if t == "" {
			trackingNumber = nil
		} else {
			trackingNumber = &t
		}
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, domain.AdminSources, target, trackingNumber)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, explainRejected(ctx, s.repo, id)
	}

	s.log.Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(target)),
		zap.String("admin_id", admin.ID))

	o, err := s.repo.FindByID(ctx, id)
	if err != nil || o == nil {
		s.log.Error("updated order reload failed", zap.String("order_id", id), zap.Error(err))
		return &domain.Order{ID: id, Status: target, TrackingNumber: trackingNumber}, nil
	}
	kind := domain.NotifyStatusChanged
	if target == domain.StatusCancelled {
		kind = domain.NotifyOrderCancelled
	}
	s.events.Notify(orderNotification(o, kind))
	return o, nil
}

// CancelOrder is the customer cancellation; it only succeeds while the
// order is still pending.
func (s *OrderService) CancelOrder(ctx context.Context, p domain.Principal, id string) (*domain.Order, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !o.OwnedBy(p) && !p.IsAdmin() {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanCustomerCancel(o.Status) {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrInvalidTransition, o.ID, o.Status)
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, []domain.OrderStatus{domain.StatusPending}, domain.StatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, explainRejected(ctx, s.repo, id)
	}

	o.Status = domain.StatusCancelled
	s.log.Info("order cancelled", zap.String("order_id", id), zap.String("by", p.ID))
	s.events.Notify(orderNotification(o, domain.NotifyOrderCancelled))
	return o, nil
}
