package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductRepository(db *gorm.DB, log *zap.Logger) repository.ProductRepository {
	return &productRepo{db: db, log: log}
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("product lookup failed", zap.Uint64("product_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.PublishedOnly {
		q = q.Where("status = ?", domain.ProductPublished)
	}
	var out []domain.Product
	if err := q.Find(&out).Error; err != nil {
		r.log.Error("product list failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// UpdateRating writes the derived rating fields together. Reviews are only
// appended, so review_count orders concurrent recomputes and a write derived
// from fewer reviews than the stored one is dropped.
func (r *productRepo) UpdateRating(ctx context.Context, id uint64, rating *float64, count int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND review_count <= ?", id, count).
		Updates(map[string]any{"rating": rating, "review_count": count})
	if res.Error != nil {
		r.log.Error("rating update failed", zap.Uint64("product_id", id), zap.Error(res.Error))
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	p, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, domain.ErrProductNotFound
	}
	r.log.Debug("stale rating dropped", zap.Uint64("product_id", id), zap.Int("count", count), zap.Int("stored", p.ReviewCount))
	return false, nil
}
