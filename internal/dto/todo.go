package dto

import (
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
)

// TodoDTO represents a todo in API responses. Overdue is derived at
// conversion time and never stored.
type TodoDTO struct {
	ID          uint64            `json:"id"`
	UserID      uint64            `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
	Priority    models.Priority   `json:"priority"`
	Tags        []string          `json:"tags"`
	DueDate     *time.Time        `json:"due_date"`
	Recurrence  models.Recurrence `json:"recurrence"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Overdue     bool              `json:"overdue"`
}

// TodoListResponse represents a filtered list of todos
type TodoListResponse struct {
	Todos   []TodoDTO `json:"todos"`
	Count   int       `json:"count"`
	HasMore bool      `json:"has_more"`
}

// CompleteTodoResponse represents the outcome of completing a todo. NextTodo
// is present only when a recurring todo spawned its successor.
type CompleteTodoResponse struct {
	CompletedTodo TodoDTO  `json:"completed_todo"`
	NextTodo      *TodoDTO `json:"next_todo,omitempty"`
}

// ToTodoDTO converts a Todo model to TodoDTO, deriving the overdue flag at
// the given instant.
func ToTodoDTO(todo models.Todo, now time.Time) TodoDTO {
	tags := todo.Tags
	if tags == nil {
		tags = models.TagList{}
	}

	return TodoDTO{
		ID:          todo.ID,
		UserID:      todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		Tags:        tags,
		DueDate:     todo.DueDate,
		Recurrence:  todo.Recurrence,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		Overdue:     todo.Overdue(now),
	}
}

// ToTodoListResponse converts a page of todos to TodoListResponse
func ToTodoListResponse(todos []models.Todo, total int64, page, limit int, now time.Time) TodoListResponse {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo, now)
	}

	hasMore := false
	if page > 0 && limit > 0 {
		hasMore = int64(page*limit) < total
	}

	return TodoListResponse{
		Todos:   items,
		Count:   len(items),
		HasMore: hasMore,
	}
}

// ToCompleteTodoResponse converts the completion result to its response shape
func ToCompleteTodoResponse(completed models.Todo, next *models.Todo, now time.Time) CompleteTodoResponse {
	response := CompleteTodoResponse{
		CompletedTodo: ToTodoDTO(completed, now),
	}
	if next != nil {
		nextDTO := ToTodoDTO(*next, now)
		response.NextTodo = &nextDTO
	}
	return response
}
