package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

const assistantSystemPrompt = `You are FirmDesk Assistant, the in-app helper of an accounting firm portal.
Answer questions about filling in forms, deadlines, document uploads and general
Indian tax and compliance topics (GST, income tax, audit, payroll, accounts).
Be concise. If a question needs a professional judgement, tell the user to
contact their account manager instead of guessing.`

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest carries the full conversation so far; the last message is the
// user's current question.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// AssistantService relays chat conversations to the configured LLM provider.
type AssistantService struct {
	cfg config.AssistantConfig
}

func NewAssistantService(cfg config.AssistantConfig) *AssistantService {
	return &AssistantService{cfg: cfg}
}

func (s *AssistantService) Enabled() bool {
	return s.cfg.Enabled
}

// Chat sends the conversation to the configured provider and returns the
// assistant's reply.
func (s *AssistantService) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if !s.cfg.Enabled {
		return "", response.NewBadRequest("assistant is not enabled")
	}

	logger.Infof("[Assistant] Using provider: %s, model: %s", s.cfg.Provider, s.cfg.Model)

	switch s.cfg.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, messages)
	case "ollama":
		return s.callOllama(ctx, messages)
	case "gemini":
		return s.callGemini(ctx, messages)
	case "azure":
		return s.callAzure(ctx, messages)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, messages)
	}
}

func (s *AssistantService) temperature() float32 {
	if s.cfg.Temperature > 0 {
		return float32(s.cfg.Temperature)
	}
	return 0.3
}

func (s *AssistantService) openAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: assistantSystemPrompt,
	})
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *AssistantService) callOpenAI(ctx context.Context, messages []ChatMessage) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.APIKey)
	if s.cfg.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    s.openAIMessages(messages),
		Temperature: s.temperature(),
	})

	if err != nil {
		logger.Infof("[Assistant] OpenAI API error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[Assistant] OpenAI response length: %d chars", len(content))
	return content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *AssistantService) callAnthropic(ctx context.Context, messages []ChatMessage) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	maxTokens := int64(s.cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	model := s.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(block))
		} else {
			params = append(params, anthropic.NewUserMessage(block))
		}
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: assistantSystemPrompt},
		},
		Messages: params,
	})
	if err != nil {
		logger.Infof("[Assistant] Anthropic API error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	logger.Infof("[Assistant] Anthropic response length: %d chars", len(content))
	return content, nil
}

// callOllama handles Ollama API using the native SDK
func (s *AssistantService) callOllama(ctx context.Context, messages []ChatMessage) (string, error) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.cfg.Model
	if model == "" {
		model = "llama3"
	}

	apiMessages := make([]api.Message, 0, len(messages)+1)
	apiMessages = append(apiMessages, api.Message{Role: "system", Content: assistantSystemPrompt})
	for _, m := range messages {
		apiMessages = append(apiMessages, api.Message{Role: m.Role, Content: m.Content})
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model:    model,
		Messages: apiMessages,
		Options: map[string]interface{}{
			"temperature": s.cfg.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})

	if err != nil {
		logger.Infof("[Assistant] Ollama API error: %v", err)
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	result := content.String()
	logger.Infof("[Assistant] Ollama response length: %d chars", len(result))
	return result, nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *AssistantService) callGemini(ctx context.Context, messages []ChatMessage) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.cfg.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	// Gemini takes a single prompt; flatten the conversation
	var prompt strings.Builder
	prompt.WriteString(assistantSystemPrompt)
	prompt.WriteString("\n\n")
	for _, m := range messages {
		prompt.WriteString(m.Role)
		prompt.WriteString(": ")
		prompt.WriteString(m.Content)
		prompt.WriteString("\n")
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt.String()), nil)
	if err != nil {
		logger.Infof("[Assistant] Gemini API error: %v", err)
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	content := resp.Text()
	logger.Infof("[Assistant] Gemini response length: %d chars", len(content))
	return content, nil
}

// callAzure handles Azure OpenAI API using special configuration
func (s *AssistantService) callAzure(ctx context.Context, messages []ChatMessage) (string, error) {
	// Azure requires BaseURL format: https://{resource-name}.openai.azure.com
	// Model field is used as deployment name
	cfg := openai.DefaultAzureConfig(s.cfg.APIKey, s.cfg.BaseURL)
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model, // In Azure, this is the deployment name
		Messages:    s.openAIMessages(messages),
		Temperature: s.temperature(),
	})

	if err != nil {
		logger.Infof("[Assistant] Azure OpenAI API error: %v", err)
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[Assistant] Azure OpenAI response length: %d chars", len(content))
	return content, nil
}
