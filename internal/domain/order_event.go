package domain

import "time"

type NotificationKind string

const (
	NotifyOrderPlaced     NotificationKind = "order_placed"
	NotifyPaymentVerified NotificationKind = "payment_verified"
	NotifyPaymentRejected NotificationKind = "payment_rejected"
	NotifyStatusChanged   NotificationKind = "status_changed"
	NotifyOrderCancelled  NotificationKind = "order_cancelled"
)

type Notification struct {
	Destination string           `json:"destination"`
	Message     string           `json:"message"`
	Kind        NotificationKind `json:"kind"`
	OrderID     string           `json:"orderId,omitempty"`
}

type InvoiceRequest struct {
	OrderID      string      `json:"orderId"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email,omitempty"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	TotalPrice   int64       `json:"totalPrice"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func NewInvoiceRequest(o *Order) InvoiceRequest {
	return InvoiceRequest{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Email:        o.Email,
		Address:      o.Address + ", " + o.City + ", " + o.State + " - " + o.Pincode,
		Items:        o.Items,
		TotalPrice:   o.TotalPrice,
		CreatedAt:    o.CreatedAt,
	}
}
