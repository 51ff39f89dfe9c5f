package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct() *domain.Product {
	return &domain.Product{ID: 1, Name: "Tote", Category: "bags", Price: 100, CostPrice: 60, Stock: 4, Status: domain.ProductPublished}
}

func TestGateway_GetProduct(t *testing.T) {
	cachedJSON, _ := json.Marshal(testProduct())

	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockProductRepository, *mocks.MockCache)
		expectedErr error
	}{
		{
			name: "cache hit skips repository",
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCache) {
				cache.On("Get", mock.Anything, "product:1").Return(string(cachedJSON), nil)
			},
		},
		{
			name: "cache miss loads and stores",
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCache) {
				cache.On("Get", mock.Anything, "product:1").Return("", redis.Nil)
				repo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(), nil)
				cache.On("Set", mock.Anything, "product:1", mock.Anything, time.Minute).Return(nil)
			},
		},
		{
			name: "cache outage falls through",
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCache) {
				cache.On("Get", mock.Anything, "product:1").Return("", errors.New("dial tcp: refused"))
				repo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(), nil)
				cache.On("Set", mock.Anything, "product:1", mock.Anything, time.Minute).Return(errors.New("dial tcp: refused"))
			},
		},
		{
			name: "missing product",
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCache) {
				cache.On("Get", mock.Anything, "product:1").Return("", redis.Nil)
				repo.On("FindByID", mock.Anything, uint64(1)).Return(nil, nil)
			},
			expectedErr: domain.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockProductRepository)
			cache := new(mocks.MockCache)
			tt.setupMocks(repo, cache)
			g := NewGateway(repo, cache, time.Minute, zap.NewNop())

			p, err := g.GetProduct(context.Background(), 1)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testProduct().Name, p.Name)
				assert.Equal(t, int64(60), p.CostPrice)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestGateway_NilCache(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	repo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(), nil)
	g := NewGateway(repo, nil, 0, zap.NewNop())

	p, err := g.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.ID)
	g.Invalidate(context.Background(), 1)
	repo.AssertExpectations(t)
}

func TestGateway_UpdateRatingInvalidates(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCache)
	rating := 4.5
	repo.On("UpdateRating", mock.Anything, uint64(1), &rating, 2).Return(true, nil)
	cache.On("Del", mock.Anything, []string{"product:1"}).Return(nil)
	g := NewGateway(repo, cache, time.Minute, zap.NewNop())

	applied, err := g.UpdateRating(context.Background(), 1, &rating, 2)
	require.NoError(t, err)
	assert.True(t, applied)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGateway_UpdateRatingError(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCache)
	repo.On("UpdateRating", mock.Anything, uint64(9), (*float64)(nil), 0).Return(false, domain.ErrProductNotFound)
	g := NewGateway(repo, cache, time.Minute, zap.NewNop())

	_, err := g.UpdateRating(context.Background(), 9, nil, 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	cache.AssertNotCalled(t, "Del", mock.Anything, mock.Anything)
}

func TestGateway_UpdateRatingStale(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCache)
	rating := 5.0
	repo.On("UpdateRating", mock.Anything, uint64(1), &rating, 1).Return(false, nil)
	cache.On("Del", mock.Anything, []string{"product:1"}).Return(nil)
	g := NewGateway(repo, cache, time.Minute, zap.NewNop())

	applied, err := g.UpdateRating(context.Background(), 1, &rating, 1)
	require.NoError(t, err)
	assert.False(t, applied)
	repo.AssertExpectations(t)
}
