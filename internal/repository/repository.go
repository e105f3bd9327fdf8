package repository

import (
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
)

// SortKey identifies the field a todo listing is ordered by.
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByDueDate   SortKey = "due_date"
	SortByPriority  SortKey = "priority"
	SortByTitle     SortKey = "title"
)

// Valid reports whether k is a supported sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortByCreatedAt, SortByDueDate, SortByPriority, SortByTitle:
		return true
	}
	return false
}

// SortOrder is the requested sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is a supported sort order.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// TodoFilter holds the owner scope plus optional listing criteria.
// All set criteria combine with AND; zero values impose no constraint.
type TodoFilter struct {
	UserID    uint64
	Search    string
	Completed *bool
	Priority  *models.Priority
	DueBefore *time.Time
	DueAfter  *time.Time
	Tag       string
	SortBy    SortKey
	SortOrder SortOrder
	Page      int
	Limit     int
}

// TodoRepository defines the interface for todo data access.
// Every method is scoped to an owning user; rows belonging to other
// users are invisible through this interface.
type TodoRepository interface {
	// Create inserts a new todo and assigns its ID and timestamps
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID within the owner's scope
	FindByID(id, userID uint64) (*models.Todo, error)

	// List retrieves todos matching the filter, plus the unpaginated total
	List(filter TodoFilter) ([]models.Todo, int64, error)

	// FindDueSoon returns incomplete todos with a due date inside [from, to]
	FindDueSoon(userID uint64, from, to time.Time) ([]models.Todo, error)

	// Update persists changes to a todo
	Update(todo *models.Todo) error

	// Delete removes a todo within the owner's scope; false when no row matched
	Delete(id, userID uint64) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// DeleteWithTodos removes a user and all owned todos in one transaction
	DeleteWithTodos(id uint64) error
}
