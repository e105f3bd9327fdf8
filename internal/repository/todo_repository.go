package repository

import (
	"strings"
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/database"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/utils"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create inserts a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo by ID within the owner's scope
func (r *GormTodoRepository) FindByID(id, userID uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves todos matching the filter along with the unpaginated total
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, int64, error) {
	var todos []models.Todo

	query := r.db.Model(&models.Todo{}).Where("todos.user_id = ?", filter.UserID)

	// Apply filters
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(todos.title) LIKE ? OR LOWER(todos.description) LIKE ?", pattern, pattern)
	}
	if filter.Completed != nil {
		query = query.Where("todos.completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("todos.priority = ?", *filter.Priority)
	}
	if filter.DueBefore != nil {
		query = query.Where("todos.due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("todos.due_date >= ?", *filter.DueAfter)
	}
	if filter.Tag != "" {
		// Tags are stored JSON-encoded, so an exact tag is always
		// wrapped in double quotes within the column text.
		query = query.Where(`todos.tags LIKE ?`, `%"`+filter.Tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderClause(filter.SortBy, filter.SortOrder)).
		Order("todos.id ASC")

	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.Limit,
			Offset: (filter.Page - 1) * filter.Limit,
		}))
	}

	if err := listQuery.Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// orderClause resolves a sort key and direction into SQL. Rows with a NULL
// sort value always come last. Priority ordering uses its rank (high first)
// for both directions; the direction request is intentionally ignored there
// to match the long-observed behavior of this API.
func orderClause(sortBy SortKey, order SortOrder) string {
	dir := "DESC"
	if order == SortAsc {
		dir = "ASC"
	}

	switch sortBy {
	case SortByDueDate:
		return "CASE WHEN todos.due_date IS NULL THEN 1 ELSE 0 END, todos.due_date " + dir
	case SortByPriority:
		return "CASE todos.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END ASC"
	case SortByTitle:
		return "todos.title " + dir
	default:
		return "todos.created_at " + dir
	}
}

// FindDueSoon returns incomplete todos with a due date inside [from, to].
// Both bounds are inclusive; todos without a due date never match.
func (r *GormTodoRepository) FindDueSoon(userID uint64, from, to time.Time) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.
		Where("user_id = ?", userID).
		Where("completed = ?", false).
		Where("due_date IS NOT NULL").
		Where("due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC").
		Order("id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Update persists changes to a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete removes a todo within the owner's scope
func (r *GormTodoRepository) Delete(id, userID uint64) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
