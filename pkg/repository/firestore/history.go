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

type historyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHistoryRepository(client *firestore.Client) *historyRepository {
	return &historyRepository{client: client}
}

func (r *historyRepository) collection() string {
	return prefixed(r.collectionPrefix, "history")
}

func (r *historyRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *historyRepository) Append(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error) {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "history_seq")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next history seq")
	}

	created := &model.HistoryRecord{
		ID:           rec.ID,
		Timestamp:    rec.Timestamp,
		Seq:          seq,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		ItemID:       rec.ItemID,
		ItemName:     rec.ItemName,
		Qty:          rec.Qty,
		Action:       rec.Action,
		AdminNote:    rec.AdminNote,
	}
	if created.ID == "" {
		created.ID = types.NewHistoryID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to append history record", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *historyRepository) Query(ctx context.Context, q model.HistoryQuery) ([]*model.HistoryRecord, error) {
	query := r.client.Collection(r.collection()).Query

	if q.EmployeeID != "" {
		query = query.Where("EmployeeID", "==", q.EmployeeID.String())
	}

	// The seq counter reflects insertion order; descending seq is the
	// newest-first ledger order. With a date range the inequality field
	// must lead the ordering, and descending timestamps are equivalent
	// there (seq is issued in timestamp order).
	if !q.Start.IsZero() && !q.End.IsZero() {
		end := q.End.AddDate(0, 0, 1) // inclusive of the whole end date
		query = query.
			Where("Timestamp", ">=", q.Start).
			Where("Timestamp", "<=", end).
			OrderBy("Timestamp", firestore.Desc)
	} else {
		query = query.OrderBy("Seq", firestore.Desc)
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	records := make([]*model.HistoryRecord, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history records")
		}

		var rec model.HistoryRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode history record", goerr.V("doc_id", docSnap.Ref.ID))
		}

		records = append(records, &rec)
	}

	return records, nil
}

func (r *historyRepository) Get(ctx context.Context, id types.HistoryID) (*model.HistoryRecord, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get history record", goerr.V("id", id))
	}

	var rec model.HistoryRecord
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode history record", goerr.V("id", id))
	}

	return &rec, nil
}

func (r *historyRepository) Update(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error) {
	docRef := r.client.Collection(r.collection()).Doc(rec.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", rec.ID))
		}
		return nil, goerr.Wrap(err, "failed to check history record existence", goerr.V("id", rec.ID))
	}

	var existing model.HistoryRecord
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode history record", goerr.V("id", rec.ID))
	}

	updated := &model.HistoryRecord{
		ID:           rec.ID,
		Timestamp:    existing.Timestamp,
		Seq:          existing.Seq,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		ItemID:       rec.ItemID,
		ItemName:     rec.ItemName,
		Qty:          rec.Qty,
		Action:       rec.Action,
		AdminNote:    rec.AdminNote,
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update history record", goerr.V("id", rec.ID))
	}

	return updated, nil
}

func (r *historyRepository) Delete(ctx context.Context, id types.HistoryID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check history record existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete history record", goerr.V("id", id))
	}

	return nil
}
