package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/repository/firestore"
	"github.com/arkade-store/stockroom/pkg/repository/memory"
)

func runItemRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns a formatted ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Name:     "Pallet jack",
			Category: "equipment",
			Stock:    4,
		})
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.HasPrefix(created.ID.String(), "ITM")).True()
		_, ok := created.ID.Seq()
		gt.Bool(t, ok).True()
		gt.Value(t, created.Name).Equal("Pallet jack")
		gt.Value(t, created.Stock).Equal(4)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Get retrieves existing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{Name: "Shrink wrap", Stock: 12})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Item().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Name).Equal("Shrink wrap")
		gt.Value(t, retrieved.Stock).Equal(12)
	})

	t.Run("Get returns error for non-existent item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Item().Get(ctx, types.ItemID("ITM99999"))
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update changes fields but preserves stored stock", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{Name: "Tape", Category: "supplies", Stock: 30})
		gt.NoError(t, err).Required()

		created.Name = "Packing tape"
		created.Stock = 999
		updated, err := repo.Item().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Name).Equal("Packing tape")
		gt.Value(t, updated.Stock).Equal(30)
	})

	t.Run("Deduct clamps stock at zero", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{Name: "Gloves", Stock: 5})
		gt.NoError(t, err).Required()

		after, err := repo.Item().Deduct(ctx, created.ID, 3)
		gt.NoError(t, err).Required()
		gt.Value(t, after.Stock).Equal(2)

		after, err = repo.Item().Deduct(ctx, created.ID, 10)
		gt.NoError(t, err).Required()
		gt.Value(t, after.Stock).Equal(0)
	})

	t.Run("AddStock raises stock", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{Name: "Boxes", Stock: 2})
		gt.NoError(t, err).Required()

		after, err := repo.Item().AddStock(ctx, created.ID, 8)
		gt.NoError(t, err).Required()
		gt.Value(t, after.Stock).Equal(10)
	})

	t.Run("Delete removes item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{Name: "Labels", Stock: 1})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Item().Delete(ctx, created.ID)).Required()

		_, err = repo.Item().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func runTaskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create defaults to assigned status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Title: "Restock aisle 3",
			Items: []model.TaskItem{{ItemID: "ITM00001", RequiredQty: 5}},
		})
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.HasPrefix(created.ID.String(), "TASK")).True()
		gt.Value(t, created.Status).Equal(types.TaskStatusAssigned)
		gt.Bool(t, created.AssignedAt.IsZero()).False()
		gt.Array(t, created.Items).Length(1)
	})

	t.Run("ListAssigned returns oldest assignment first and skips completed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		older, err := repo.Task().Create(ctx, &model.Task{Title: "old", AssignedAt: base})
		gt.NoError(t, err).Required()
		newer, err := repo.Task().Create(ctx, &model.Task{Title: "new", AssignedAt: base.Add(10 * time.Minute)})
		gt.NoError(t, err).Required()
		done, err := repo.Task().Create(ctx, &model.Task{
			Title:      "done",
			Status:     types.TaskStatusCompleted,
			AssignedAt: base.Add(20 * time.Minute),
		})
		gt.NoError(t, err).Required()

		assigned, err := repo.Task().ListAssigned(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, assigned).Length(2)
		gt.Value(t, assigned[0].ID).Equal(older.ID)
		gt.Value(t, assigned[1].ID).Equal(newer.ID)

		for _, task := range assigned {
			gt.Bool(t, task.ID == done.ID).False()
		}
	})

	t.Run("List returns newest assignment first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		older, err := repo.Task().Create(ctx, &model.Task{Title: "old", AssignedAt: base})
		gt.NoError(t, err).Required()
		newer, err := repo.Task().Create(ctx, &model.Task{Title: "new", AssignedAt: base.Add(10 * time.Minute)})
		gt.NoError(t, err).Required()

		tasks, err := repo.Task().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(2)
		gt.Value(t, tasks[0].ID).Equal(newer.ID)
		gt.Value(t, tasks[1].ID).Equal(older.ID)
	})

	t.Run("Update persists acknowledgement sets", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{Title: "Count freezer stock"})
		gt.NoError(t, err).Required()

		gt.Bool(t, created.MarkRead("EMP00001")).True()
		gt.Bool(t, created.MarkRead("EMP00001")).False()
		gt.Bool(t, created.MarkChecked("EMP00002")).True()

		_, err = repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, retrieved.IsReadBy("EMP00001")).True()
		gt.Bool(t, retrieved.IsCheckedBy("EMP00002")).True()
		gt.Bool(t, retrieved.IsReadBy("EMP00002")).False()
	})

	t.Run("Delete removes task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{Title: "Throwaway"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Task().Delete(ctx, created.ID)).Required()

		_, err = repo.Task().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func runEmployeeRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns EMP ID and defaults role", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Employee().Create(ctx, &model.Employee{
			Name:    "Dana",
			Email:   "dana@example.com",
			PinHash: "hash",
		})
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.HasPrefix(created.ID.String(), "EMP")).True()
		gt.Value(t, created.Role).Equal(types.RoleEmployee)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Update changes fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Employee().Create(ctx, &model.Employee{Name: "Sam", PinHash: "h1"})
		gt.NoError(t, err).Required()

		created.Role = types.RoleAdmin
		created.PushToken = "ExponentPushToken[abc]"
		updated, err := repo.Employee().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Role).Equal(types.RoleAdmin)
		gt.Value(t, updated.PushToken).Equal("ExponentPushToken[abc]")
	})

	t.Run("Delete removes employee", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Employee().Create(ctx, &model.Employee{Name: "Temp", PinHash: "h"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Employee().Delete(ctx, created.ID)).Required()

		_, err = repo.Employee().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func runHistoryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append assigns ID, seq and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID:   "EMP00001",
			EmployeeName: "Dana",
			ItemID:       "ITM00001",
			ItemName:     "Gloves",
			Qty:          2,
			Action:       types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()

		gt.String(t, created.ID.String()).NotEqual("")
		gt.Bool(t, created.Seq > 0).True()
		gt.Bool(t, created.Timestamp.IsZero()).False()
	})

	t.Run("Query returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 1,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()
		second, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID: "EMP00001", ItemID: "ITM00002", ItemName: "b", Qty: 1,
			Action: types.HistoryActionRestock,
		})
		gt.NoError(t, err).Required()

		records, err := repo.History().Query(ctx, model.HistoryQuery{Limit: 10})
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		gt.Value(t, records[0].ID).Equal(second.ID)
		gt.Value(t, records[1].ID).Equal(first.ID)
	})

	t.Run("Query filters by employee and honors limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := repo.History().Append(ctx, &model.HistoryRecord{
				EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 1,
				Action: types.HistoryActionDeduct,
			})
			gt.NoError(t, err).Required()
		}
		_, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID: "EMP00002", ItemID: "ITM00001", ItemName: "a", Qty: 1,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()

		records, err := repo.History().Query(ctx, model.HistoryQuery{
			EmployeeID: "EMP00001",
			Limit:      2,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		for _, rec := range records {
			gt.Value(t, rec.EmployeeID).Equal(types.EmployeeID("EMP00001"))
		}
	})

	t.Run("Query date range includes the whole end date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		inside, err := repo.History().Append(ctx, &model.HistoryRecord{
			Timestamp:  day.Add(15 * time.Hour),
			EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 1,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()
		_, err = repo.History().Append(ctx, &model.HistoryRecord{
			Timestamp:  day.Add(50 * time.Hour),
			EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 1,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()

		records, err := repo.History().Query(ctx, model.HistoryQuery{
			Start: day,
			End:   day,
			Limit: 10,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0].ID).Equal(inside.ID)
	})

	t.Run("Update corrects movement fields only", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 5,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()

		created.Qty = 3
		created.Action = types.HistoryActionRestock
		created.AdminNote = "corrected"
		updated, err := repo.History().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Qty).Equal(3)
		gt.Value(t, updated.Action).Equal(types.HistoryActionRestock)
		gt.Value(t, updated.AdminNote).Equal("corrected")
		gt.Value(t, updated.Seq).Equal(created.Seq)
	})

	t.Run("Delete removes record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID: "EMP00001", ItemID: "ITM00001", ItemName: "a", Qty: 1,
			Action: types.HistoryActionDeduct,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.History().Delete(ctx, created.ID)).Required()

		_, err = repo.History().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func runSettingsRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("GetLowStockThreshold defaults when unset", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		threshold, err := repo.Settings().GetLowStockThreshold(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, threshold).Equal(interfaces.DefaultLowStockThreshold)
	})

	t.Run("SetLowStockThreshold persists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Settings().SetLowStockThreshold(ctx, 7)).Required()

		threshold, err := repo.Settings().GetLowStockThreshold(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, threshold).Equal(7)
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemoryItemRepository(t *testing.T) {
	runItemRepositoryTest(t, func(t *testing.T) interfaces.Repository { return memory.New() })
}

func TestMemoryTaskRepository(t *testing.T) {
	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository { return memory.New() })
}

func TestMemoryEmployeeRepository(t *testing.T) {
	runEmployeeRepositoryTest(t, func(t *testing.T) interfaces.Repository { return memory.New() })
}

func TestMemoryHistoryRepository(t *testing.T) {
	runHistoryRepositoryTest(t, func(t *testing.T) interfaces.Repository { return memory.New() })
}

func TestMemorySettingsRepository(t *testing.T) {
	runSettingsRepositoryTest(t, func(t *testing.T) interfaces.Repository { return memory.New() })
}

func TestFirestoreItemRepository(t *testing.T) {
	runItemRepositoryTest(t, newFirestoreRepository)
}

func TestFirestoreTaskRepository(t *testing.T) {
	runTaskRepositoryTest(t, newFirestoreRepository)
}

func TestFirestoreEmployeeRepository(t *testing.T) {
	runEmployeeRepositoryTest(t, newFirestoreRepository)
}

func TestFirestoreHistoryRepository(t *testing.T) {
	runHistoryRepositoryTest(t, newFirestoreRepository)
}

func TestFirestoreSettingsRepository(t *testing.T) {
	runSettingsRepositoryTest(t, newFirestoreRepository)
}
