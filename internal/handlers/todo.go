package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/constants"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/dto"
	apierrors "github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/errors"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/middleware"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/services"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/utils"
)

// TodoHandler coordinates todo-related HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the caller's todos with optional filtering and sorting.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTodosInput{
		UserID:    userID,
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Tag:       c.Query("tag"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if raw := c.Query("due_before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "due_before must be an RFC3339 timestamp")
			return
		}
		input.DueBefore = &parsed
	}
	if raw := c.Query("due_after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "due_after must be an RFC3339 timestamp")
			return
		}
		input.DueAfter = &parsed
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.Limit = params.Limit

	todos, total, err := h.todoService.List(input)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos, total, params.Page, params.Limit, time.Now().UTC()))
}

// CreateTodo creates a new todo owned by the caller.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTodoRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		Tags        []string   `json:"tags"`
		DueDate     *time.Time `json:"due_date"`
		Recurrence  string     `json:"recurrence"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Create(userID, services.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo, time.Now().UTC()))
}

// GetTodo returns a single todo owned by the caller.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now().UTC()))
}

// UpdateTodo applies a sparse update: only the fields present in the JSON
// body change. The raw body is inspected so "due_date": null (clear) can be
// told apart from an absent due_date (keep).
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := buildUpdateInput(c, rawReq)
	if !ok {
		return
	}

	todo, err := h.todoService.Update(userID, todoID, input)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now().UTC()))
}

func buildUpdateInput(c *gin.Context, rawReq map[string]any) (services.UpdateTodoInput, bool) {
	var input services.UpdateTodoInput

	if raw, ok := rawReq["title"]; ok {
		value, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "title must be a string")
			return input, false
		}
		input.Title = &value
	}
	if raw, ok := rawReq["description"]; ok {
		value := ""
		if raw != nil {
			str, ok := raw.(string)
			if !ok {
				apierrors.BadRequest(c, "description must be a string")
				return input, false
			}
			value = str
		}
		input.Description = &value
	}
	if raw, ok := rawReq["completed"]; ok {
		value, ok := raw.(bool)
		if !ok {
			apierrors.BadRequest(c, "completed must be a boolean")
			return input, false
		}
		input.Completed = &value
	}
	if raw, ok := rawReq["priority"]; ok {
		value, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "priority must be a string")
			return input, false
		}
		input.Priority = &value
	}
	if raw, ok := rawReq["tags"]; ok {
		input.TagsSet = true
		if raw != nil {
			items, ok := raw.([]any)
			if !ok {
				apierrors.BadRequest(c, "tags must be an array of strings")
				return input, false
			}
			tags := make([]string, 0, len(items))
			for _, item := range items {
				tag, ok := item.(string)
				if !ok {
					apierrors.BadRequest(c, "tags must be an array of strings")
					return input, false
				}
				tags = append(tags, tag)
			}
			input.Tags = tags
		}
	}
	if raw, ok := rawReq["due_date"]; ok {
		input.DueDateSet = true
		if raw != nil {
			str, ok := raw.(string)
			if !ok {
				apierrors.BadRequest(c, "due_date must be an RFC3339 timestamp or null")
				return input, false
			}
			parsed, err := time.Parse(time.RFC3339, str)
			if err != nil {
				apierrors.BadRequest(c, "due_date must be an RFC3339 timestamp or null")
				return input, false
			}
			input.DueDate = &parsed
		}
	}
	if raw, ok := rawReq["recurrence"]; ok {
		value, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "recurrence must be a string")
			return input, false
		}
		input.Recurrence = &value
	}

	return input, true
}

// DeleteTodo removes a todo owned by the caller.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(userID, todoID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// CompleteTodo marks a todo as done. A recurring todo additionally spawns
// its next occurrence, returned alongside the completed one.
func (h *TodoHandler) CompleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	completed, next, err := h.todoService.Complete(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompleteTodoResponse(*completed, next, time.Now().UTC()))
}

// DueSoon returns incomplete todos due within the requested lookahead window.
func (h *TodoHandler) DueSoon(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	hours, err := strconv.Atoi(c.DefaultQuery("hours", strconv.Itoa(constants.DefaultDueSoonHours)))
	if err != nil {
		apierrors.BadRequest(c, services.ErrInvalidDueSoonWindow.Error())
		return
	}

	todos, err := h.todoService.DueSoon(userID, hours)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	now := time.Now().UTC()
	items := make([]dto.TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = dto.ToTodoDTO(todo, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"todos": items,
		"count": len(items),
	})
}

// SuggestTodos drafts todos from free text using the AI service. Nothing is
// persisted; the caller decides what to create.
func (h *TodoHandler) SuggestTodos(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SuggestTodosRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTodosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.todoService.Suggest(c.Request.Context(), req.Text)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todos": drafts,
		"count": len(drafts),
	})
}

func parseTodoID(c *gin.Context) (uint64, bool) {
	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return 0, false
	}
	return todoID, true
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidRecurrence),
		errors.Is(err, services.ErrTooManyTags),
		errors.Is(err, services.ErrTagTooLong),
		errors.Is(err, services.ErrDuplicateTags),
		errors.Is(err, services.ErrInvalidTagCharacters),
		errors.Is(err, services.ErrRecurrenceRequiresDueDate),
		errors.Is(err, services.ErrInvalidStatusFilter),
		errors.Is(err, services.ErrInvalidSortKey),
		errors.Is(err, services.ErrInvalidSortOrder),
		errors.Is(err, services.ErrInvalidDueSoonWindow):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoSuggestions),
		errors.Is(err, services.ErrAINoValidSuggestions):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
