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
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) collection() string {
	return prefixed(r.collectionPrefix, "tasks")
}

func (r *taskRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "task_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next task ID")
	}

	now := time.Now().UTC()
	created := &model.Task{
		ID:          types.NewTaskID(seq),
		Title:       task.Title,
		Description: task.Description,
		Items:       task.Items,
		Status:      task.Status.Normalize(),
		AssignedAt:  task.AssignedAt,
		UpdatedAt:   now,
		ReadBy:      task.ReadBy,
		CheckedBy:   task.CheckedBy,
	}
	if created.AssignedAt.IsZero() {
		created.AssignedAt = now
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var task model.Task
	if err := docSnap.DataTo(&task); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).OrderBy("AssignedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	return r.collect(ctx, iter)
}

func (r *taskRepository) ListAssigned(ctx context.Context) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).
		Where("Status", "==", types.TaskStatusAssigned.String()).
		OrderBy("AssignedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return r.collect(ctx, iter)
}

// collect drains an iterator. Rows that cannot be decoded are logged and
// skipped so one malformed task does not abort a whole reconciliation.
func (r *taskRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*model.Task, error) {
	var tasks []*model.Task
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var task model.Task
		if err := docSnap.DataTo(&task); err != nil {
			logging.From(ctx).Error("skipping undecodable task row",
				"doc_id", docSnap.Ref.ID,
				"error", err.Error(),
			)
			continue
		}

		tasks = append(tasks, &task)
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	docRef := r.client.Collection(r.collection()).Doc(task.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", task.ID))
		}
		return nil, goerr.Wrap(err, "failed to check task existence", goerr.V("id", task.ID))
	}

	var existing model.Task
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", task.ID))
	}

	updated := &model.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Items:       task.Items,
		Status:      task.Status.Normalize(),
		AssignedAt:  task.AssignedAt,
		UpdatedAt:   time.Now().UTC(),
		ReadBy:      task.ReadBy,
		CheckedBy:   task.CheckedBy,
	}
	if updated.AssignedAt.IsZero() {
		updated.AssignedAt = existing.AssignedAt
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", task.ID))
	}

	return updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check task existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	return nil
}
