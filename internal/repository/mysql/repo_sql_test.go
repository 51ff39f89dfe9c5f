package mysql

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront-service/internal/config"
	"storefront-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	driver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm renders, with vars inlined.
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) first(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.stmts)
	return r.stmts[0]
}

// newDryRunDB renders mysql statements without a server.
func newDryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(driver.New(driver.Config{
		DSN:                       config.MySQLConfig{User: "storefront", Host: "127.0.0.1", Port: "3306", Database: "storefront"}.DSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)
	return db, rec
}

func TestOrderRepo_VerifyPaymentSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOrderRepository(db, zap.NewNop())

	_, err := repo.VerifyPaymentIf(context.Background(), "o-1")
	require.NoError(t, err)

	sql := rec.first(t)
	assert.Contains(t, sql, "UPDATE `orders` SET")
	assert.Contains(t, sql, "`payment_status`='verified'")
	assert.Contains(t, sql, "`status`=CASE WHEN status = 'pending' THEN 'confirmed' ELSE status END")
	assert.Contains(t, sql, "id = 'o-1' AND payment_status = 'pending' AND status <> 'cancelled'")
}

func TestOrderRepo_RejectPaymentSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOrderRepository(db, zap.NewNop())

	_, err := repo.RejectPaymentIf(context.Background(), "o-1")
	require.NoError(t, err)

	sql := rec.first(t)
	assert.Contains(t, sql, "`payment_status`='failed'")
	assert.NotContains(t, sql, "`status`=")
	assert.Contains(t, sql, "id = 'o-1' AND payment_status = 'pending'")
}

func TestOrderRepo_UpdateStatusSQL(t *testing.T) {
	tests := []struct {
		name     string
		tracking *string
		want     []string
		absent   string
	}{
		{
			name:     "with tracking number",
			tracking: func() *string { s := "AWB1"; return &s }(),
			want:     []string{"`status`='shipped'", "`tracking_number`='AWB1'"},
		},
		{
			name:   "without tracking number",
			want:   []string{"`status`='shipped'"},
			absent: "tracking_number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, rec := newDryRunDB(t)
			repo := NewOrderRepository(db, zap.NewNop())

			_, err := repo.UpdateStatusIf(context.Background(), "o-1", domain.AdminSources, domain.StatusShipped, tt.tracking)
			require.NoError(t, err)

			sql := rec.first(t)
			for _, w := range tt.want {
				assert.Contains(t, sql, w)
			}
			if tt.absent != "" {
				assert.NotContains(t, sql, tt.absent)
			}
			assert.Contains(t, sql, "id = 'o-1' AND status IN ('pending','confirmed','processing','shipped')")
		})
	}
}

func TestOrderRepo_UpdateStatusWithoutSourcesIsNoop(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOrderRepository(db, zap.NewNop())

	ok, err := repo.UpdateStatusIf(context.Background(), "o-1", nil, domain.StatusShipped, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rec.stmts)
}

func TestOrderRepo_SetReceiptSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOrderRepository(db, zap.NewNop())

	_, err := repo.SetReceiptIf(context.Background(), "o-1", "https://cdn.example/p.png")
	require.NoError(t, err)

	sql := rec.first(t)
	assert.Contains(t, sql, "`payment_receipt_ref`='https://cdn.example/p.png'")
	assert.Contains(t, sql, "id = 'o-1' AND payment_status = 'pending'")
}

func TestProductRepo_UpdateRatingSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewProductRepository(db, zap.NewNop())
	rating := 4.3

	_, _ = repo.UpdateRating(context.Background(), 1, &rating, 3)

	sql := rec.first(t)
	assert.Contains(t, sql, "UPDATE `products` SET")
	assert.Contains(t, sql, "`rating`=4.3")
	assert.Contains(t, sql, "`review_count`=3")
	assert.Contains(t, sql, "id = 1 AND review_count <= 3")
}
