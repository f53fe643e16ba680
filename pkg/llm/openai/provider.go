package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"ai-workspace-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client *goopenai.Client
	models llm.Models
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL string, models llm.Models, timeout time.Duration) *OpenAIProvider {
	clientConfig := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIProvider{
		client: goopenai.NewClientWithConfig(clientConfig),
		models: models,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// convertMessage builds a multimodal message when images are attached.
func convertMessage(msg llm.Message) goopenai.ChatCompletionMessage {
	role := msg.Role
	if role == "model" {
		role = goopenai.ChatMessageRoleAssistant
	}

	if len(msg.Images) == 0 {
		return goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	multiContent := []goopenai.ChatMessagePart{
		{
			Type: goopenai.ChatMessagePartTypeText,
			Text: msg.Content,
		},
	}
	for _, img := range msg.Images {
		dataURL := fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data))
		multiContent = append(multiContent, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeImageURL,
			ImageURL: &goopenai.ChatMessageImageURL{
				URL:    dataURL,
				Detail: goopenai.ImageURLDetailAuto,
			},
		})
	}

	return goopenai.ChatCompletionMessage{
		Role:         role,
		MultiContent: multiContent,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, convertMessage(msg))
	}

	req := goopenai.ChatCompletionRequest{
		Model:       p.models.Resolve(options),
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: float32(options.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}

func (p *OpenAIProvider) GenerateWithImage(ctx context.Context, image llm.Image, instruction string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: instruction, Images: []llm.Image{image}}}, opts...)
}
