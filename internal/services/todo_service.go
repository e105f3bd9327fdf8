package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/constants"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound              = errors.New("todo not found")
	ErrTitleRequired             = errors.New("title is required")
	ErrTitleTooLong              = errors.New("title exceeds 500 characters")
	ErrDescriptionTooLong        = errors.New("description exceeds 5000 characters")
	ErrInvalidPriority           = errors.New("priority must be one of low, medium, high")
	ErrInvalidRecurrence         = errors.New("recurrence must be one of none, daily, weekly, monthly")
	ErrTooManyTags               = errors.New("a todo can have at most 10 tags")
	ErrTagTooLong                = errors.New("tags must be 50 characters or fewer")
	ErrDuplicateTags             = errors.New("duplicate tags are not allowed")
	ErrInvalidTagCharacters      = errors.New("tags may only contain letters, digits, spaces, hyphens, and underscores")
	ErrRecurrenceRequiresDueDate = errors.New("recurrence requires due_date to be set")
	ErrInvalidStatusFilter       = errors.New("status must be completed or pending")
	ErrInvalidSortKey            = errors.New("sort_by must be one of created_at, due_date, priority, title")
	ErrInvalidSortOrder          = errors.New("sort_order must be asc or desc")
	ErrInvalidDueSoonWindow      = errors.New("hours must be between 1 and 24")
	ErrAIServiceNotConfigured    = errors.New("AI service is not configured")
	ErrAINoSuggestions           = errors.New("AI did not suggest any todos")
	ErrAINoValidSuggestions      = errors.New("no valid todos could be built from AI output")
)

// TodoService handles todo business logic. Every operation is scoped to the
// owning user; a todo belonging to someone else behaves as if it does not
// exist.
type TodoService struct {
	todoRepo  repository.TodoRepository
	aiService *AIService
	now       func() time.Time
}

// NewTodoService creates a new TodoService. aiService may be nil, which
// disables suggestions.
func NewTodoService(todoRepo repository.TodoRepository, aiService *AIService) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		aiService: aiService,
		now:       time.Now,
	}
}

// ListTodosInput represents filters for listing todos. Empty strings and nil
// pointers impose no constraint.
type ListTodosInput struct {
	UserID    uint64
	Search    string
	Status    string
	Priority  string
	DueBefore *time.Time
	DueAfter  *time.Time
	Tag       string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title       string
	Description string
	Priority    string
	Tags        []string
	DueDate     *time.Time
	Recurrence  string
}

// UpdateTodoInput represents a sparse update. A nil pointer means the field
// was not supplied and keeps its value. DueDateSet distinguishes "clear the
// due date" (set with nil DueDate) from "leave it alone"; TagsSet does the
// same for tags.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Tags        []string
	TagsSet     bool
	DueDate     *time.Time
	DueDateSet  bool
	Recurrence  *string
}

// List returns the user's todos matching the filters, plus the total match
// count before pagination.
func (s *TodoService) List(input ListTodosInput) ([]models.Todo, int64, error) {
	filter := repository.TodoFilter{
		UserID: input.UserID,
		Search: input.Search,
		Tag:    input.Tag,
		Page:   input.Page,
		Limit:  input.Limit,
	}

	switch input.Status {
	case "":
	case "completed":
		completed := true
		filter.Completed = &completed
	case "pending":
		completed := false
		filter.Completed = &completed
	default:
		return nil, 0, ErrInvalidStatusFilter
	}

	if input.Priority != "" {
		priority := models.Priority(strings.ToLower(input.Priority))
		if !priority.Valid() {
			return nil, 0, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	filter.DueBefore = input.DueBefore
	filter.DueAfter = input.DueAfter

	filter.SortBy = repository.SortByCreatedAt
	if input.SortBy != "" {
		filter.SortBy = repository.SortKey(input.SortBy)
		if !filter.SortBy.Valid() {
			return nil, 0, ErrInvalidSortKey
		}
	}

	filter.SortOrder = repository.SortDesc
	if input.SortOrder != "" {
		filter.SortOrder = repository.SortOrder(strings.ToLower(input.SortOrder))
		if !filter.SortOrder.Valid() {
			return nil, 0, ErrInvalidSortOrder
		}
	}

	todos, total, err := s.todoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, total, nil
}

// Get returns a single todo owned by the user.
func (s *TodoService) Get(userID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// Create validates the input and inserts a new todo for the user. The owner
// always comes from the authenticated caller, never from the payload.
func (s *TodoService) Create(userID uint64, input CreateTodoInput) (*models.Todo, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.Priority(strings.ToLower(input.Priority))
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	recurrence := models.RecurrenceNone
	if input.Recurrence != "" {
		recurrence = models.Recurrence(strings.ToLower(input.Recurrence))
		if !recurrence.Valid() {
			return nil, ErrInvalidRecurrence
		}
	}

	if err := validateTags(input.Tags); err != nil {
		return nil, err
	}

	if recurrence != models.RecurrenceNone && input.DueDate == nil {
		return nil, ErrRecurrenceRequiresDueDate
	}

	todo := &models.Todo{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Tags:        models.TagList(input.Tags),
		DueDate:     input.DueDate,
		Recurrence:  recurrence,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// Update applies a sparse update to a todo owned by the user. Validation
// runs against the resulting state before anything is written, so a failed
// update never partially applies.
func (s *TodoService) Update(userID, todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		todo.Title = *input.Title
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		todo.Description = *input.Description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Priority != nil {
		priority := models.Priority(strings.ToLower(*input.Priority))
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		todo.Priority = priority
	}
	if input.TagsSet {
		if err := validateTags(input.Tags); err != nil {
			return nil, err
		}
		todo.Tags = models.TagList(input.Tags)
	}
	if input.DueDateSet {
		todo.DueDate = input.DueDate
	}
	if input.Recurrence != nil {
		recurrence := models.Recurrence(strings.ToLower(*input.Recurrence))
		if !recurrence.Valid() {
			return nil, ErrInvalidRecurrence
		}
		todo.Recurrence = recurrence
	}

	// The invariant holds on the resulting state, whichever side changed.
	if todo.Recurrence != models.RecurrenceNone && todo.DueDate == nil {
		return nil, ErrRecurrenceRequiresDueDate
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete removes a todo owned by the user.
func (s *TodoService) Delete(userID, todoID uint64) error {
	deleted, err := s.todoRepo.Delete(todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if !deleted {
		return ErrTodoNotFound
	}
	return nil
}

// Complete marks a todo as completed and, for a recurring todo with a due
// date, inserts the next occurrence. Completing an already-completed todo is
// a no-op that returns the todo unchanged and spawns nothing.
func (s *TodoService) Complete(userID, todoID uint64) (*models.Todo, *models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTodoNotFound
		}
		return nil, nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if todo.Completed {
		return todo, nil, nil
	}

	todo.Completed = true
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, nil, fmt.Errorf("failed to complete todo: %w", err)
	}

	if todo.Recurrence == models.RecurrenceNone {
		return todo, nil, nil
	}

	if todo.DueDate == nil {
		// Creation and update both enforce recurrence => due date, so this
		// only happens with corrupted rows. Skip the successor rather than
		// failing the completion.
		log.Printf("todo %d has recurrence %q but no due date; skipping next instance", todo.ID, todo.Recurrence)
		return todo, nil, nil
	}

	nextDue := NextDueDate(*todo.DueDate, todo.Recurrence)
	next := &models.Todo{
		UserID:      todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Tags:        todo.Tags,
		DueDate:     &nextDue,
		Recurrence:  todo.Recurrence,
		Completed:   false,
	}

	if err := s.todoRepo.Create(next); err != nil {
		return nil, nil, fmt.Errorf("failed to create next occurrence: %w", err)
	}

	return todo, next, nil
}

// DueSoon returns the user's incomplete todos due within the next `hours`
// hours. The window is [now, now+hours], far bound inclusive.
func (s *TodoService) DueSoon(userID uint64, hours int) ([]models.Todo, error) {
	if hours < constants.MinDueSoonHours || hours > constants.MaxDueSoonHours {
		return nil, ErrInvalidDueSoonWindow
	}

	now := s.now().UTC()
	todos, err := s.todoRepo.FindDueSoon(userID, now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to find due-soon todos: %w", err)
	}

	return todos, nil
}

// Suggest uses AI to draft todos from free text. Drafts are returned to the
// caller unpersisted.
func (s *TodoService) Suggest(ctx context.Context, text string) ([]SuggestedTodo, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.aiService.SuggestTodosFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest todos: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoSuggestions
	}
	if len(drafts) > constants.MaxAISuggestions {
		drafts = drafts[:constants.MaxAISuggestions]
	}

	valid := make([]SuggestedTodo, 0, len(drafts))
	cutoff := s.now().Add(-24 * time.Hour)
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}

		priority := models.Priority(strings.ToLower(draft.Priority))
		if !priority.Valid() {
			priority = models.PriorityMedium
		}
		draft.Priority = string(priority)

		if draft.DueDate != nil && draft.DueDate.Before(cutoff) {
			draft.DueDate = nil
		}

		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidSuggestions
	}

	return valid, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > constants.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > constants.MaxTags {
		return ErrTooManyTags
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > constants.MaxTagLength {
			return ErrTagTooLong
		}
		if _, exists := seen[tag]; exists {
			return ErrDuplicateTags
		}
		seen[tag] = struct{}{}

		for _, r := range tag {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '_' {
				return ErrInvalidTagCharacters
			}
		}
	}

	return nil
}
