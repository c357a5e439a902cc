package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const chatSystemPrompt = "You are a legal expert assistant that helps draft legal documents."

// OpenAIDrafter implements Drafter on top of the OpenAI chat-completions API.
type OpenAIDrafter struct {
	client *openai.Client
	model  string
}

// NewOpenAIDrafter builds a drafter for the given API key and model.
// baseURL overrides the API endpoint (useful for gateways and for tests);
// empty means the default OpenAI endpoint.
func NewOpenAIDrafter(apiKey, baseURL, model string) *OpenAIDrafter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIDrafter{client: openai.NewClientWithConfig(cfg), model: model}
}

// Draft asks the model for a complete legal document. The prompt mirrors
// the shape the frontend proxy always used: the document type plus the raw
// field map serialized as JSON.
func (d *OpenAIDrafter) Draft(ctx context.Context, docType string, language string, fields map[string]string) (string, error) {
	info := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		info[k] = v
	}
	if language != "" {
		info["language"] = language
	}
	encoded, err := json.Marshal(info)
	if err != nil {
		return "", &GenerationError{Op: "draft", Err: fmt.Errorf("encode fields: %w", err)}
	}

	prompt := fmt.Sprintf("Generate a legal %s document using the following info: %s", docType, encoded)
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    d.model,
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
	})
	if err != nil {
		return "", &GenerationError{Op: "draft", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Op: "draft", Err: errors.New("empty choice list in response")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &GenerationError{Op: "draft", Err: errors.New("empty document text in response")}
	}
	return text, nil
}

// Chat answers a free-form prompt with the legal-assistant system role.
func (d *OpenAIDrafter) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", &GenerationError{Op: "chat", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Op: "chat", Err: errors.New("empty choice list in response")}
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", &GenerationError{Op: "chat", Err: errors.New("empty reply in response")}
	}
	return reply, nil
}
