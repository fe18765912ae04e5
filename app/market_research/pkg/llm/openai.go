package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
)

// openAIModel 基于 eino ChatModel 的 OpenAI 兼容后端
type openAIModel struct {
	chatModel model.ChatModel
}

func newOpenAIModel(ctx context.Context, cfg config.OpenAIConfig, timeout time.Duration, temperature float32, maxTokens int) (*openAIModel, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Timeout:     timeout,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat model init failed: %w", err)
	}
	return &openAIModel{chatModel: chatModel}, nil
}

// Complete implements Model
func (m *openAIModel) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	resp, err := m.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
