package model

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// Item represents a stocked inventory item
type Item struct {
	ID        types.ItemID
	Name      string
	Category  string
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
