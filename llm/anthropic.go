package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	DefaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 2048
)

// AnthropicChatModel adapts the Anthropic Messages API to model.BaseChatModel.
type AnthropicChatModel struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicChatModel(apiKey, modelName string) (*AnthropicChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key not configured")
	}
	if modelName == "" {
		modelName = DefaultAnthropicModel
	}
	return &AnthropicChatModel{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     modelName,
		maxTokens: defaultAnthropicMaxTokens,
	}, nil
}

func (a *AnthropicChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	system, turns := splitSystem(input)
	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, m := range turns {
		if m.Role == schema.Assistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	slog.Debug("Sending Anthropic request", "model", a.model, "messages", len(messages))
	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		sb.WriteString(block.Text)
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("anthropic returned no text content")
	}
	return schema.AssistantMessage(sb.String(), nil), nil
}

func (a *AnthropicChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := a.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

var _ model.BaseChatModel = (*AnthropicChatModel)(nil)
