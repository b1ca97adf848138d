package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// GetLowStockThreshold returns the alerting threshold, falling back to
// the default when none has been saved.
func (uc *UseCases) GetLowStockThreshold(ctx context.Context) (int, error) {
	threshold, err := uc.repo.Settings().GetLowStockThreshold(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get low stock threshold")
	}
	return threshold, nil
}

// SetLowStockThreshold persists the alerting threshold
func (uc *UseCases) SetLowStockThreshold(ctx context.Context, threshold int) error {
	if threshold < 0 {
		return goerr.Wrap(ErrInvalidThreshold, "low stock threshold must not be negative",
			goerr.V("threshold", threshold))
	}
	if err := uc.repo.Settings().SetLowStockThreshold(ctx, threshold); err != nil {
		return goerr.Wrap(err, "failed to set low stock threshold")
	}
	return nil
}
