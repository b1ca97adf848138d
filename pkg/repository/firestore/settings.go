package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
)

type settingsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingsRepository(client *firestore.Client) *settingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) collection() string {
	return prefixed(r.collectionPrefix, "settings")
}

func (r *settingsRepository) GetLowStockThreshold(ctx context.Context) (int, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc("low_stock_threshold").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return interfaces.DefaultLowStockThreshold, nil
		}
		return 0, goerr.Wrap(err, "failed to get low stock threshold")
	}

	value, err := docSnap.DataAt("value")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read low stock threshold value")
	}

	threshold, ok := value.(int64)
	if !ok {
		return 0, goerr.New("low stock threshold is not of type int64", goerr.V("value", value))
	}

	return int(threshold), nil
}

func (r *settingsRepository) SetLowStockThreshold(ctx context.Context, threshold int) error {
	_, err := r.client.Collection(r.collection()).Doc("low_stock_threshold").Set(ctx, map[string]interface{}{
		"value": threshold,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to set low stock threshold", goerr.V("threshold", threshold))
	}

	return nil
}
