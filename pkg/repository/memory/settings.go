package memory

import (
	"context"
	"sync"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
)

type settingsRepository struct {
	mu        sync.RWMutex
	threshold *int
}

func newSettingsRepository() *settingsRepository {
	return &settingsRepository{}
}

func (r *settingsRepository) GetLowStockThreshold(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.threshold == nil {
		return interfaces.DefaultLowStockThreshold, nil
	}
	return *r.threshold, nil
}

func (r *settingsRepository) SetLowStockThreshold(ctx context.Context, threshold int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.threshold = &threshold
	return nil
}
