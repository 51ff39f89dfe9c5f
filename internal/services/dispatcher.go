package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra"

	"go.uber.org/zap"
)

const sideEffectTimeout = 10 * time.Second

// Dispatcher runs notification and invoice calls in the background. Their
// failures are logged and never reach the caller of the state change.
type Dispatcher struct {
	notifier infra.NotifierInterface
	log      *zap.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(n infra.NotifierInterface, log *zap.Logger) *Dispatcher {
	return &Dispatcher{notifier: n, log: log}
}

func (d *Dispatcher) Notify(msg domain.Notification) {
	if msg.Destination == "" {
		d.log.Warn("notification skipped: no destination", zap.String("kind", string(msg.Kind)), zap.String("order_id", msg.OrderID))
		return
	}
	d.run(func(ctx context.Context) {
		if err := d.notifier.Notify(ctx, msg); err != nil {
			d.log.Warn("notification failed",
				zap.String("kind", string(msg.Kind)),
				zap.String("order_id", msg.OrderID),
				zap.Error(err))
		}
	})
}

func (d *Dispatcher) Invoice(o *domain.Order) {
	req := domain.NewInvoiceRequest(o)
	d.run(func(ctx context.Context) {
		if err := d.notifier.GenerateInvoice(ctx, req); err != nil {
			d.log.Warn("invoice generation failed", zap.String("order_id", req.OrderID), zap.Error(err))
		}
	})
}

// Wait blocks until every dispatched call has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("side effect panicked", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func orderNotification(o *domain.Order, kind domain.NotificationKind) domain.Notification {
	short := o.ID
	if len(short) > 8 {
		short = short[:8]
	}
	var msg string
	switch kind {
	case domain.NotifyOrderPlaced:
		msg = fmt.Sprintf("Hi %s, we received your order %s for %s. We will confirm once your payment is verified.",
			o.CustomerName, short, domain.FormatAmount(o.TotalPrice))
	case domain.NotifyPaymentVerified:
		msg = fmt.Sprintf("Payment of %s for order %s is verified. Your order is confirmed.",
			domain.FormatAmount(o.TotalPrice), short)
	case domain.NotifyPaymentRejected:
		msg = fmt.Sprintf("We could not verify the payment for order %s. Please contact us or upload a new payment proof.", short)
	case domain.NotifyOrderCancelled:
		msg = fmt.Sprintf("Your order %s has been cancelled.", short)
	default:
		msg = fmt.Sprintf("Your order %s is now %s.", short, o.Status)
		if o.Status == domain.StatusShipped && o.TrackingNumber != nil {
			msg += " Tracking number: " + *o.TrackingNumber
		}
	}
	return domain.Notification{
		Destination: o.Phone,
		Message:     msg,
		Kind:        kind,
		OrderID:     o.ID,
	}
}
