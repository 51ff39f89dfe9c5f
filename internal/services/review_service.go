package services

import (
	"context"
	"strings"
	"time"

	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewInput struct {
	ProductID uint64 `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type RatingSummary struct {
	ProductID   uint64   `json:"productId"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
}

type ReviewService struct {
	reviews repository.ReviewRepository
	catalog catalog.GatewayInterface
	log     *zap.Logger
	now     func() time.Time
}

func NewReviewService(r repository.ReviewRepository, c catalog.GatewayInterface, log *zap.Logger) *ReviewService {
	return &ReviewService{reviews: r, catalog: c, log: log, now: time.Now}
}

// AddReview stores the review and then rebuilds the product rating from every
// stored review for that product.
func (s *ReviewService) AddReview(ctx context.Context, p domain.Principal, in ReviewInput) (*domain.Review, *RatingSummary, error) {
	if !p.Authenticated() {
		return nil, nil, domain.ErrUnauthorized
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		verr := &domain.ValidationError{}
		verr.Add("rating", "must be between 1 and 5")
		return nil, nil, verr
	}
	if _, err := s.catalog.GetProduct(ctx, in.ProductID); err != nil {
		return nil, nil, err
	}

	rv := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		UserID:    p.ID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now(),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, nil, err
	}

	summary, err := s.Recompute(ctx, in.ProductID)
	if err != nil {
		return rv, nil, err
	}
	return rv, summary, nil
}

// Recompute rebuilds the rating from the stored reviews. When a concurrent
// recompute already stored a rating over more reviews, that one is returned.
func (s *ReviewService) Recompute(ctx context.Context, productID uint64) (*RatingSummary, error) {
	all, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rating, count := domain.AverageRating(all)
	applied, err := s.catalog.UpdateRating(ctx, productID, rating, count)
	if err != nil {
		s.log.Error("rating update failed", zap.Uint64("product_id", productID), zap.Error(err))
		return nil, err
	}
	if applied {
		return &RatingSummary{ProductID: productID, Rating: rating, ReviewCount: count}, nil
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &RatingSummary{ProductID: productID, Rating: p.Rating, ReviewCount: p.ReviewCount}, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uint64) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
