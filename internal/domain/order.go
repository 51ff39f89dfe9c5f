package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentBank PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentUPI || m == PaymentBank
}

// Order is created once by checkout. Items and TotalPrice are a snapshot of
// the catalog at submission time and are never recomputed.
type Order struct {
	ID                string        `json:"id" gorm:"primaryKey;type:char(36)"`
	CustomerID        string        `json:"customerId" gorm:"type:varchar(64);not null;index"`
	Items             []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CustomerName      string        `json:"customerName" gorm:"not null"`
	Phone             string        `json:"phone" gorm:"type:varchar(20);not null"`
	Email             string        `json:"email"`
	Address           string        `json:"address" gorm:"not null"`
	City              string        `json:"city" gorm:"not null"`
	State             string        `json:"state" gorm:"not null"`
	Pincode           string        `json:"pincode" gorm:"type:varchar(10);not null"`
	PaymentMethod     PaymentMethod `json:"paymentMethod" gorm:"type:enum('upi','bank');not null"`
	TotalPrice        int64         `json:"totalPrice" gorm:"not null"`
	Status            OrderStatus   `json:"status" gorm:"type:enum('pending','confirmed','processing','shipped','delivered','cancelled');default:'pending';index"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" gorm:"type:enum('pending','verified','failed');default:'pending';index"`
	PaymentReceiptRef *string       `json:"paymentReceiptRef,omitempty"`
	TrackingNumber    *string       `json:"trackingNumber,omitempty"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

type OrderItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string `json:"-" gorm:"type:char(36);not null;index"`
	ProductID uint64 `json:"productId" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

func (i OrderItem) Total() int64 {
	return LineTotal(i.Price, i.Quantity)
}

func (o *Order) OwnedBy(p Principal) bool {
	return o.CustomerID != "" && o.CustomerID == p.ID
}

// OrderFilter narrows admin order listings. Zero values match everything.
type OrderFilter struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	CustomerID    string
	Limit         int
}
