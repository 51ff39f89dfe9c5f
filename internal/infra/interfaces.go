package infra

import (
	"context"
	"io"

	"storefront-service/internal/domain"
)

type UploaderInterface interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

var _ UploaderInterface = (*UploadClient)(nil)

// NotifierInterface delivers customer notifications and invoice requests.
// Both are best effort.
type NotifierInterface interface {
	Notify(ctx context.Context, msg domain.Notification) error
	GenerateInvoice(ctx context.Context, req domain.InvoiceRequest) error
}
