package interfaces

import "context"

// DefaultLowStockThreshold is returned when no threshold has been persisted
const DefaultLowStockThreshold = 1

// SettingsRepository defines the interface for persisted settings
type SettingsRepository interface {
	// GetLowStockThreshold returns the configured threshold, or
	// DefaultLowStockThreshold if unset.
	GetLowStockThreshold(ctx context.Context) (int, error)

	// SetLowStockThreshold persists the threshold
	SetLowStockThreshold(ctx context.Context, threshold int) error
}
