package http

import (
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"
)

type CheckoutRequest struct {
	ProductID     uint64                   `json:"productId"`
	Quantity      int                      `json:"quantity"`
	Items         []services.LineRequest   `json:"items"`
	Shipping      services.ShippingDetails `json:"shipping"`
	PaymentMethod domain.PaymentMethod     `json:"paymentMethod"`
	TotalPrice    int64                    `json:"totalPrice" binding:"min=0"`
}

func (r CheckoutRequest) toService() services.CheckoutRequest {
	return services.CheckoutRequest{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		Items:         r.Items,
		Shipping:      r.Shipping,
		PaymentMethod: r.PaymentMethod,
		DeclaredTotal: r.TotalPrice,
	}
}

// ProductView is the public listing shape; cost price stays internal.
type ProductView struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           int64    `json:"price"`
	MRP             *int64   `json:"mrp,omitempty"`
	DiscountPercent int      `json:"discountPercent"`
	Savings         int64    `json:"savings"`
	InStock         bool     `json:"inStock"`
	Rating          *float64 `json:"rating,omitempty"`
	ReviewCount     int      `json:"reviewCount"`
}

func newProductView(p domain.Product) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
		MRP:             p.MRP,
		DiscountPercent: domain.DiscountPercent(p.MRP, p.Price),
		Savings:         domain.Savings(p.MRP, p.Price, 1),
		InStock:         p.Stock > 0,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
	}
}

type CheckoutResponse struct {
	ID            string               `json:"id"`
	TotalPrice    int64                `json:"totalPrice"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

type UpdateStatusRequest struct {
	Status         domain.OrderStatus `json:"status" binding:"required"`
	TrackingNumber *string            `json:"trackingNumber"`
}

type ExpenseRequest struct {
	Category    string     `json:"category" binding:"required"`
	Amount      int64      `json:"amount" binding:"required"`
	Description string     `json:"description"`
	PaymentDate *time.Time `json:"paymentDate"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	Review  *domain.Review          `json:"review"`
	Product *services.RatingSummary `json:"product"`
}
