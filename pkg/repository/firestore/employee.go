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

type employeeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEmployeeRepository(client *firestore.Client) *employeeRepository {
	return &employeeRepository{client: client}
}

func (r *employeeRepository) collection() string {
	return prefixed(r.collectionPrefix, "employees")
}

func (r *employeeRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *employeeRepository) Create(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "employee_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next employee ID")
	}

	created := &model.Employee{
		ID:        types.NewEmployeeID(seq),
		Name:      emp.Name,
		Role:      emp.Role.Normalize(),
		Email:     emp.Email,
		PinHash:   emp.PinHash,
		PushToken: emp.PushToken,
		LastLogin: emp.LastLogin,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create employee", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *employeeRepository) Get(ctx context.Context, id types.EmployeeID) (*model.Employee, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get employee", goerr.V("id", id))
	}

	var emp model.Employee
	if err := docSnap.DataTo(&emp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode employee", goerr.V("id", id))
	}

	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	iter := r.client.Collection(r.collection()).OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var employees []*model.Employee
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate employees")
		}

		var emp model.Employee
		if err := docSnap.DataTo(&emp); err != nil {
			return nil, goerr.Wrap(err, "failed to decode employee", goerr.V("doc_id", docSnap.Ref.ID))
		}

		employees = append(employees, &emp)
	}

	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	docRef := r.client.Collection(r.collection()).Doc(emp.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", emp.ID))
		}
		return nil, goerr.Wrap(err, "failed to check employee existence", goerr.V("id", emp.ID))
	}

	var existing model.Employee
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode employee", goerr.V("id", emp.ID))
	}

	updated := &model.Employee{
		ID:        emp.ID,
		Name:      emp.Name,
		Role:      emp.Role.Normalize(),
		Email:     emp.Email,
		PinHash:   emp.PinHash,
		PushToken: emp.PushToken,
		LastLogin: emp.LastLogin,
		CreatedAt: existing.CreatedAt,
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update employee", goerr.V("id", emp.ID))
	}

	return updated, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id types.EmployeeID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check employee existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete employee", goerr.V("id", id))
	}

	return nil
}
