package rabbitmq

import (
	"context"

	"storefront-service/internal/domain"
)

const (
	notificationPrefix = "notification."
	invoiceRoutingKey  = "invoice.generate"
)

// EventNotifier hands notifications and invoice requests to downstream
// consumers (SMS gateway, invoice renderer) over the exchange.
type EventNotifier struct {
	pub PublisherInterface
}

func NewEventNotifier(pub PublisherInterface) *EventNotifier {
	return &EventNotifier{pub: pub}
}

func (n *EventNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	return n.pub.Publish(ctx, notificationPrefix+string(msg.Kind), msg)
}

func (n *EventNotifier) GenerateInvoice(ctx context.Context, req domain.InvoiceRequest) error {
	return n.pub.Publish(ctx, invoiceRoutingKey, req)
}
