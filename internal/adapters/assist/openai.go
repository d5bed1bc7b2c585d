package assist

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/core/usecases"
)

const (
	defaultMaxTokens   = 200
	defaultTemperature = 0.7
)

// ChatConfig holds the settings for one OpenAI-compatible chat provider.
// BaseURL selects the upstream (api.openai.com, OpenRouter, Groq, any
// compatible gateway); Model is that upstream's model identifier.
type ChatConfig struct {
	Name    string
	Class   domain.ProviderClass
	APIKey  string
	BaseURL string
	Model   string
}

// ChatProvider answers travel prompts through an OpenAI-compatible chat
// completion API.
type ChatProvider struct {
	cfg    ChatConfig
	client *openai.Client
}

// NewChatProvider creates a chat provider. An empty API key yields an
// unconfigured provider that the orchestrator will skip.
func NewChatProvider(cfg ChatConfig) *ChatProvider {
	p := &ChatProvider{cfg: cfg}
	if cfg.APIKey != "" {
		p.client = newClient(cfg, cfg.APIKey)
	}
	return p
}

func newClient(cfg ChatConfig, apiKey string) *openai.Client {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

func (p *ChatProvider) Name() string                { return p.cfg.Name }
func (p *ChatProvider) Class() domain.ProviderClass { return p.cfg.Class }
func (p *ChatProvider) Configured() bool            { return p.client != nil }

// Answer runs one chat completion. A traveler-supplied key overrides the
// configured credential for this call only.
func (p *ChatProvider) Answer(ctx context.Context, req ports.AssistRequest) (string, error) {
	client := p.client
	if req.APIKeyOverride != "" {
		client = newClient(p.cfg, req.APIKeyOverride)
	}
	if client == nil {
		return "", fmt.Errorf("%s: no API key configured", p.cfg.Name)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: usecases.SystemPrompt(),
	})
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: chat completion: %w", p.cfg.Name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: empty completion", p.cfg.Name)
	}
	return resp.Choices[0].Message.Content, nil
}
