package ai

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/curelink/disha/pkg/model"
)

// OpenAIClient talks to OpenAI-compatible chat completion endpoints.
// The system prompt is prepended as a system-role message.
type OpenAIClient struct {
	client            *openai.Client
	logger            *log.Logger
	model             string
	maxContextTokens  int
	maxResponseTokens int
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(logger *log.Logger, apiKey, baseURL, llmModel string, maxContextTokens, maxResponseTokens int) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	if llmModel == "" {
		llmModel = "gpt-4-turbo-preview"
	}
	return &OpenAIClient{
		client:            &client,
		logger:            logger,
		model:             llmModel,
		maxContextTokens:  maxContextTokens,
		maxResponseTokens: maxResponseTokens,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, history []ChatMessage) (Reply, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, message := range history {
		switch message.Role {
		case model.RoleUser:
			messages = append(messages, openai.UserMessage(message.Content))
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(message.Content))
		case model.RoleSystem:
			messages = append(messages, openai.SystemMessage(message.Content))
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:  messages,
		Model:     c.model,
		MaxTokens: openai.Int(int64(c.maxResponseTokens)),
	})
	if err != nil {
		return Reply{}, err
	}
	if len(completion.Choices) == 0 {
		return Reply{}, fmt.Errorf("OpenAI returned no completion choices")
	}

	return Reply{
		Content:    completion.Choices[0].Message.Content,
		TokensUsed: int(completion.Usage.TotalTokens),
	}, nil
}

// CountTokens uses the character estimate; tokenizer differences are
// absorbed by the budget headroom.
func (c *OpenAIClient) CountTokens(text string) int {
	return EstimateTokens(text)
}

func (c *OpenAIClient) MaxContextTokens() int {
	return c.maxContextTokens
}
