package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"superclinic/models"
)

// GeminiClient talks to the Gemini API, adapting its function-calling shape
// (structured args, no call ids) to the tool-call message model.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) ChatCompletion(ctx context.Context, messages []models.ChatMessage, tools []models.ToolSpec) (models.ChatMessage, error) {
	model := c.client.GenerativeModel(c.model)
	model.Tools = toGeminiTools(tools)

	history, last, err := toGeminiContents(messages, model)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if last == nil {
		return models.ChatMessage{}, fmt.Errorf("gemini chat completion: no message to send")
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
			return models.ChatMessage{}, &RateLimitError{}
		}
		return models.ChatMessage{}, fmt.Errorf("gemini chat completion: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.ChatMessage{}, fmt.Errorf("gemini chat completion: empty response")
	}
	return fromGeminiContent(resp.Candidates[0].Content)
}

// toGeminiContents splits the history into prior turns and the message to
// send. The leading system message becomes the model's system instruction.
func toGeminiContents(messages []models.ChatMessage, model *genai.GenerativeModel) ([]*genai.Content, *genai.Content, error) {
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
		case models.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		case models.RoleAssistant:
			content := &genai.Content{Role: "model"}
			if m.Content != "" {
				content.Parts = append(content.Parts, genai.Text(m.Content))
			}
			calls := m.ToolCalls
			if len(calls) == 0 && m.FunctionCall != nil {
				calls = []models.ToolCall{*m.FunctionCall}
			}
			for _, tc := range calls {
				args := map[string]any{}
				if tc.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
						return nil, nil, fmt.Errorf("decode tool call arguments: %w", err)
					}
				}
				content.Parts = append(content.Parts, genai.FunctionCall{Name: tc.Name, Args: args})
			}
			if len(content.Parts) > 0 {
				contents = append(contents, content)
			}
		case models.RoleTool, models.RoleFunction:
			result := map[string]any{}
			if m.Content != "" {
				if err := json.Unmarshal([]byte(m.Content), &result); err != nil {
					result = map[string]any{"content": m.Content}
				}
			}
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.FunctionResponse{Name: m.Name, Response: result}},
			})
		}
	}
	if len(contents) == 0 {
		return nil, nil, nil
	}
	return contents[:len(contents)-1], contents[len(contents)-1], nil
}

func toGeminiTools(tools []models.ToolSpec) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]*genai.Schema, len(t.Parameters.Properties))
		for name, p := range t.Parameters.Properties {
			props[name] = &genai.Schema{
				Type:        toGeminiType(p.Type),
				Description: p.Description,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Parameters.Required,
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func toGeminiType(t string) genai.Type {
	switch t {
	case "boolean":
		return genai.TypeBoolean
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}

func fromGeminiContent(content *genai.Content) (models.ChatMessage, error) {
	out := models.ChatMessage{Role: models.RoleAssistant}
	for _, part := range content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Content += string(p)
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return models.ChatMessage{}, fmt.Errorf("encode tool call arguments: %w", err)
			}
			// Gemini does not issue call ids; mint one so tool results can
			// still be correlated.
			out.ToolCalls = append(out.ToolCalls, models.ToolCall{
				ID:        "call_" + uuid.NewString(),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	return out, nil
}
