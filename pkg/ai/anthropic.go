package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/curelink/disha/pkg/model"
)

// AnthropicClient talks to the Anthropic messages API. The system
// prompt goes in the dedicated System field rather than the message
// list.
type AnthropicClient struct {
	client            *anthropic.Client
	logger            *log.Logger
	model             string
	maxContextTokens  int
	maxResponseTokens int
}

var _ Client = (*AnthropicClient)(nil)

func NewAnthropicClient(logger *log.Logger, apiKey, llmModel string, maxContextTokens, maxResponseTokens int) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if llmModel == "" {
		llmModel = "claude-3-5-sonnet-latest"
	}
	return &AnthropicClient{
		client:            &client,
		logger:            logger,
		model:             llmModel,
		maxContextTokens:  maxContextTokens,
		maxResponseTokens: maxResponseTokens,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt string, history []ChatMessage) (Reply, error) {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, message := range history {
		switch message.Role {
		case model.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message.Content)))
		case model.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(message.Content)))
		}
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxResponseTokens),
		Messages:  messages,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
	})
	if err != nil {
		return Reply{}, err
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return Reply{}, fmt.Errorf("anthropic returned no text content")
	}

	return Reply{
		Content:    content.String(),
		TokensUsed: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}, nil
}

// CountTokens approximates one token per four characters, which is the
// documented rough ratio for Claude models.
func (c *AnthropicClient) CountTokens(text string) int {
	return EstimateTokens(text)
}

func (c *AnthropicClient) MaxContextTokens() int {
	return c.maxContextTokens
}
