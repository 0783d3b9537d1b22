// Package providers implements the model-call collaborator.
package providers

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/newshound/newshound/internal/schema"
)

// OpenAIProvider talks to any OpenAI-compatible chat-completions endpoint
// with function calling.
type OpenAIProvider struct {
	client       *openai.Client
	defaultModel string
}

// NewOpenAIProvider constructs a provider. apiBase is optional; when empty
// the library default (api.openai.com) is used.
func NewOpenAIProvider(apiKey, apiBase, defaultModel string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		cfg.BaseURL = apiBase
	}
	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}
}

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

// Chat implements schema.LLMProvider.
//
// Malformed JSON in a model-proposed argument set is a hard error for that
// call: it surfaces as the returned error, to be caught at the loop level.
func (p *OpenAIProvider) Chat(
	ctx context.Context,
	messages schema.Messages,
	tools []schema.ToolDefinition,
	opts schema.ChatOptions,
) (schema.LLMResponse, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toWireMessages(messages),
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if len(tools) > 0 {
		req.Tools = toWireTools(tools)
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return schema.LLMResponse{}, fmt.Errorf("chat completion: empty choices")
	}

	return fromWireResponse(resp)
}

// toWireMessages converts the conversation into go-openai request messages.
func toWireMessages(messages schema.Messages) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages.Messages))
	for _, m := range messages.Messages {
		wire := openai.ChatCompletionMessage{Role: m.Role}

		switch c := m.Content.(type) {
		case string:
			wire.Content = c
		case *string:
			if c != nil {
				wire.Content = *c
			}
		case []schema.ContentBlock:
			wire.MultiContent = toWireParts(c)
		}

		for _, tc := range m.ToolCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			wire.ToolCalls = append(wire.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(argsJSON),
				},
			})
		}

		if m.Role == "tool" {
			wire.ToolCallID = m.ToolCallID
			wire.Name = m.ToolName
		}

		out = append(out, wire)
	}
	return out
}

func toWireParts(blocks []schema.ContentBlock) []openai.ChatMessagePart {
	parts := make([]openai.ChatMessagePart, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "text":
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: b.Text,
			})
		case "image_url":
			imgURL, _ := b.ImageURL["url"].(string)
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: imgURL},
			})
		}
	}
	return parts
}

func toWireTools(tools []schema.ToolDefinition) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

// fromWireResponse normalises the API response, decoding every tool call's
// argument JSON up front.
func fromWireResponse(resp openai.ChatCompletionResponse) (schema.LLMResponse, error) {
	choice := resp.Choices[0]

	out := schema.LLMResponse{
		FinishReason: string(choice.FinishReason),
		Usage: map[string]int{
			"input_tokens":  resp.Usage.PromptTokens,
			"output_tokens": resp.Usage.CompletionTokens,
		},
	}

	if choice.Message.Content != "" {
		content := choice.Message.Content
		out.Content = &content
	}

	for _, tc := range choice.Message.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return schema.LLMResponse{}, fmt.Errorf(
					"invalid JSON in arguments of tool call %s (%s): %w", tc.ID, tc.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, schema.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	return out, nil
}
