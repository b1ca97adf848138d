package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

type itemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newItemRepository(client *firestore.Client) *itemRepository {
	return &itemRepository{client: client}
}

func (r *itemRepository) collection() string {
	return prefixed(r.collectionPrefix, "items")
}

func (r *itemRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "item_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next item ID")
	}

	now := time.Now().UTC()
	created := &model.Item{
		ID:        types.NewItemID(seq),
		Name:      item.Name,
		Category:  item.Category,
		Stock:     item.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create item", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *itemRepository) Get(ctx context.Context, id types.ItemID) (*model.Item, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get item", goerr.V("id", id))
	}

	var item model.Item
	if err := docSnap.DataTo(&item); err != nil {
		return nil, goerr.Wrap(err, "failed to decode item", goerr.V("id", id))
	}

	return &item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]*model.Item, error) {
	iter := r.client.Collection(r.collection()).OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var items []*model.Item
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate items")
		}

		var item model.Item
		if err := docSnap.DataTo(&item); err != nil {
			return nil, goerr.Wrap(err, "failed to decode item", goerr.V("doc_id", docSnap.Ref.ID))
		}

		items = append(items, &item)
	}

	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	docRef := r.client.Collection(r.collection()).Doc(item.ID.String())

	var updated *model.Item
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", item.ID))
			}
			return goerr.Wrap(err, "failed to get item", goerr.V("id", item.ID))
		}

		var existing model.Item
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode item", goerr.V("id", item.ID))
		}

		updated = &model.Item{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Stock:     existing.Stock, // stock changes go through Deduct/AddStock
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now().UTC(),
		}
		return tx.Set(docRef, updated)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *itemRepository) Delete(ctx context.Context, id types.ItemID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check item existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete item", goerr.V("id", id))
	}

	return nil
}

// adjustStock applies delta inside a transaction so two concurrent stock
// writes against the same item cannot interleave their read-modify-write.
func (r *itemRepository) adjustStock(ctx context.Context, id types.ItemID, delta int, clampZero bool) (*model.Item, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	var updated *model.Item
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get item", goerr.V("id", id))
		}

		var item model.Item
		if err := doc.DataTo(&item); err != nil {
			return goerr.Wrap(err, "failed to decode item", goerr.V("id", id))
		}

		item.Stock += delta
		if clampZero && item.Stock < 0 {
			item.Stock = 0
		}
		item.UpdatedAt = time.Now().UTC()

		updated = &item
		return tx.Set(docRef, &item)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *itemRepository) Deduct(ctx context.Context, id types.ItemID, qty int) (*model.Item, error) {
	return r.adjustStock(ctx, id, -qty, true)
}

func (r *itemRepository) AddStock(ctx context.Context, id types.ItemID, qty int) (*model.Item, error) {
	return r.adjustStock(ctx, id, qty, false)
}
