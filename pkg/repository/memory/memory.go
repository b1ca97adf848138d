package memory

import (
	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	item     *itemRepository
	task     *taskRepository
	employee *employeeRepository
	history  *historyRepository
	settings *settingsRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		item:     newItemRepository(),
		task:     newTaskRepository(),
		employee: newEmployeeRepository(),
		history:  newHistoryRepository(),
		settings: newSettingsRepository(),
	}
}

func (m *Memory) Item() interfaces.ItemRepository {
	return m.item
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Employee() interfaces.EmployeeRepository {
	return m.employee
}

func (m *Memory) History() interfaces.HistoryRepository {
	return m.history
}

func (m *Memory) Settings() interfaces.SettingsRepository {
	return m.settings
}

func (m *Memory) Close() error {
	return nil
}
