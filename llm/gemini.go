package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiChatModel adapts the Gemini API to model.BaseChatModel.
type GeminiChatModel struct {
	client *genai.Client
	model  string
}

func NewGeminiChatModel(ctx context.Context, apiKey, modelName string) (*GeminiChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiChatModel{client: client, model: modelName}, nil
}

func (g *GeminiChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	system, turns := splitSystem(input)
	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		var role genai.Role = genai.RoleUser
		if m.Role == schema.Assistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	slog.Debug("Sending Gemini request", "model", g.model, "contents", len(contents))
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}
	return schema.AssistantMessage(sb.String(), nil), nil
}

func (g *GeminiChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := g.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

var _ model.BaseChatModel = (*GeminiChatModel)(nil)
