package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// SuggestionService turns free text into task suggestions using OpenAI GPT.
type SuggestionService struct {
	client *openai.Client
}

// TaskSuggestion is one extracted task. Suggestions are not persisted; the
// client creates real tasks from the ones the user keeps.
type TaskSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewSuggestionService(apiKey string) *SuggestionService {
	return &SuggestionService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasksFromText analyzes text and extracts actionable tasks.
func (s *SuggestionService) SuggestTasksFromText(ctx context.Context, text string) ([]TaskSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete, actionable tasks from the text below.

Text:
%s

Return a JSON array of the extracted tasks in this exact shape:
[
  {
    "title": "short task title",
    "description": "what needs to be done"
  }
]

Rules:
- Return an empty array [] if the text contains no tasks
- Keep titles under ten words
- Return only the JSON, no surrounding prose`, text)

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

	var suggestions []TaskSuggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return suggestions, nil
}
