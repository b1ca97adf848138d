package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Item() ItemRepository
	Task() TaskRepository
	Employee() EmployeeRepository
	History() HistoryRepository
	Settings() SettingsRepository

	Close() error
}
