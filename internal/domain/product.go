package domain

import "time"

type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
)

type Product struct {
	ID          uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string        `json:"name" gorm:"not null"`
	Category    string        `json:"category" gorm:"index"`
	Price       int64         `json:"price" gorm:"not null"`
	MRP         *int64        `json:"mrp,omitempty"`
	CostPrice   int64         `json:"costPrice" gorm:"not null;default:0"`
	Stock       int64         `json:"stock" gorm:"not null;default:0"`
	Status      ProductStatus `json:"status" gorm:"type:enum('draft','published');default:'draft';index"`
	Rating      *float64      `json:"rating,omitempty"`
	ReviewCount int           `json:"reviewCount" gorm:"not null;default:0"`
	UpdatedAt   time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Product) Published() bool {
	return p.Status == ProductPublished
}

type ProductFilter struct {
	Category      string
	PublishedOnly bool
}
