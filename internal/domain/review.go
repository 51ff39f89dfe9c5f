package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:char(36)"`
	ProductID uint64    `json:"productId" gorm:"not null;index"`
	UserID    string    `json:"userId" gorm:"type:varchar(64);not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// AverageRating recomputes the product rating from the full review set:
// mean rounded to one decimal place. It returns nil for no reviews.
func AverageRating(reviews []Review) (*float64, int) {
	if len(reviews) == 0 {
		return nil, 0
	}
	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	mean := decimal.NewFromInt(sum).
		DivRound(decimal.NewFromInt(int64(len(reviews))), 8).
		Round(1)
	v, _ := mean.Float64()
	return &v, len(reviews)
}
