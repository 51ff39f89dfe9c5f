package services

import (
	"time"

	"storefront-service/internal/domain"
)

const (
	TestOrderID    = "9b2f4c1e-7d3a-4e5b-8f60-1a2b3c4d5e6f"
	TestCustomerID = "cust-1"
	TestAdminID    = "admin-1"
)

var (
	testCustomer = domain.Principal{ID: TestCustomerID, DisplayName: "Ravi", Role: domain.RoleCustomer}
	testAdmin    = domain.Principal{ID: TestAdminID, DisplayName: "Meera", Role: domain.RoleAdmin}
	anonymous    = domain.Principal{}
)

func CreateMockOrder(id string, status domain.OrderStatus, payment domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		CustomerID:    TestCustomerID,
		CustomerName:  "Ravi",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		City:          "Pune",
		State:         "MH",
		Pincode:       "411001",
		PaymentMethod: domain.PaymentUPI,
		TotalPrice:    250,
		Status:        status,
		PaymentStatus: payment,
		Items: []domain.OrderItem{
			{OrderID: id, ProductID: 1, Name: "Tote", Price: 100, Quantity: 2},
			{OrderID: id, ProductID: 2, Name: "Pouch", Price: 50, Quantity: 1},
		},
		CreatedAt: time.Now(),
	}
}

func CreateMockProduct(id uint64, name string, price, stock int64) *domain.Product {
	return &domain.Product{
		ID:        id,
		Name:      name,
		Category:  "bags",
		Price:     price,
		CostPrice: price / 2,
		Stock:     stock,
		Status:    domain.ProductPublished,
	}
}

func validShipping() ShippingDetails {
	return ShippingDetails{
		Name:    "Ravi",
		Phone:   "9876543210",
		Email:   "ravi@example.com",
		Address: "12 MG Road",
		City:    "Pune",
		State:   "MH",
		Pincode: "411001",
	}
}
