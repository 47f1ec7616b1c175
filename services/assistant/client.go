package assistant

import (
	"context"
	"fmt"
	"time"

	"superclinic/config"
	"superclinic/models"
)

// Client abstracts a chat-completion provider with tool calling. The returned
// message is the assistant's reply: either plain content or tool invocations.
type Client interface {
	ChatCompletion(ctx context.Context, messages []models.ChatMessage, tools []models.ToolSpec) (models.ChatMessage, error)
}

// RateLimitError reports a provider rate limit. RetryAfter is the provider's
// suggested wait, zero when the provider gave no hint.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// NewClientFromConfig builds the provider selected by LLM_PROVIDER.
func NewClientFromConfig(ctx context.Context) (Client, error) {
	switch config.AppConfig.LLMProvider {
	case "openai", "":
		return NewOpenAIClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIModel), nil
	case "gemini":
		return NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.AppConfig.LLMProvider)
	}
}
