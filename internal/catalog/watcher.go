package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"storefront-service/internal/domain"

	"go.uber.org/zap"
)

// Watcher polls the catalog and reports a new snapshot only when its
// serialized form differs from the last successful fetch.
type Watcher struct {
	reader   Reader
	interval time.Duration
	onChange func(context.Context, []domain.Product)
	log      *zap.Logger

	mu   sync.RWMutex
	last []byte
	snap []domain.Product
}

func NewWatcher(r Reader, interval time.Duration, onChange func(context.Context, []domain.Product), log *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{reader: r, interval: interval, onChange: onChange, log: log}
}

// Run polls until ctx is done. The first poll happens immediately.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Poll(ctx); err != nil && ctx.Err() == nil {
			w.log.Warn("catalog poll failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll fetches once and returns whether the snapshot changed.
func (w *Watcher) Poll(ctx context.Context) (bool, error) {
	products, err := w.reader.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(products)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	if bytes.Equal(w.last, data) {
		w.mu.Unlock()
		return false, nil
	}
	w.last = data
	w.snap = products
	w.mu.Unlock()

	w.log.Info("catalog changed", zap.Int("products", len(products)))
	if w.onChange != nil {
		w.onChange(ctx, products)
	}
	return true, nil
}

func (w *Watcher) Snapshot() []domain.Product {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.Product, len(w.snap))
	copy(out, w.snap)
	return out
}
