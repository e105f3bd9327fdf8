package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type SuggestedTodo struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTodosFromText analyzes free text and extracts todo drafts using OpenAI GPT
func (s *AIService) SuggestTodosFromText(ctx context.Context, text string) ([]SuggestedTodo, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().UTC().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a todo extraction assistant. Extract concrete todo items from the text below.

Current time (UTC): %s

Text:
%s

Return a JSON array of the extracted todos in this exact shape:
[
  {
    "title": "short todo title",
    "description": "details of the todo",
    "priority": "low, medium, or high",
    "due_date": "deadline in ISO8601, e.g. 2025-10-28T23:59:59Z, or null when the text names none"
  }
]

Rules:
- Return an empty array [] when the text contains no todos
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- due_date must be an ISO8601 string or null
- Return only the JSON, no prose`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var todos []SuggestedTodo
	if err := json.Unmarshal([]byte(content), &todos); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return todos, nil
}
