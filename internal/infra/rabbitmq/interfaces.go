package rabbitmq

import (
	"context"

	"storefront-service/internal/infra"
)

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

var _ PublisherInterface = (*Publisher)(nil)

var _ infra.NotifierInterface = (*EventNotifier)(nil)
