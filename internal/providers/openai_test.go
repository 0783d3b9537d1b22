package providers

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/newshound/newshound/internal/schema"
)

func TestToWireMessages(t *testing.T) {
	content := "calling a tool"
	conv := schema.NewMessages()
	conv.AddSystem("you are a news agent")
	conv.AddUser("latest tech news")
	conv.AddAssistant(&content, []schema.ToolCall{
		{ID: "call_1", Name: "fetch_top_news", Arguments: map[string]any{"category": "TECHNOLOGY"}},
	})
	conv.AddToolResult("call_1", "fetch_top_news", `{"success":true}`)

	wire := toWireMessages(conv)
	if len(wire) != 4 {
		t.Fatalf("expected 4 wire messages, got %d", len(wire))
	}

	if wire[0].Role != "system" || wire[0].Content != "you are a news agent" {
		t.Errorf("system: %+v", wire[0])
	}
	if wire[1].Role != "user" || wire[1].Content != "latest tech news" {
		t.Errorf("user: %+v", wire[1])
	}

	assistant := wire[2]
	if assistant.Role != "assistant" || assistant.Content != content {
		t.Errorf("assistant: %+v", assistant)
	}
	if len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "call_1" {
		t.Fatalf("assistant tool calls: %+v", assistant.ToolCalls)
	}
	if assistant.ToolCalls[0].Function.Arguments != `{"category":"TECHNOLOGY"}` {
		t.Errorf("arguments: %q", assistant.ToolCalls[0].Function.Arguments)
	}

	toolMsg := wire[3]
	if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call_1" || toolMsg.Name != "fetch_top_news" {
		t.Errorf("tool: %+v", toolMsg)
	}
}

func TestToWireMessages_MultiPartUser(t *testing.T) {
	conv := schema.NewMessages()
	conv.AddUser([]schema.ContentBlock{
		{Type: "text", Text: "what is in this picture"},
		{Type: "image_url", ImageURL: map[string]any{"url": "https://x/img.png"}},
	})

	wire := toWireMessages(conv)
	if len(wire) != 1 {
		t.Fatalf("expected 1 wire message, got %d", len(wire))
	}
	parts := wire[0].MultiContent
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != openai.ChatMessagePartTypeText || parts[0].Text != "what is in this picture" {
		t.Errorf("text part: %+v", parts[0])
	}
	if parts[1].Type != openai.ChatMessagePartTypeImageURL || parts[1].ImageURL.URL != "https://x/img.png" {
		t.Errorf("image part: %+v", parts[1])
	}
}

func TestFromWireResponse_ToolCalls(t *testing.T) {
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: "assistant",
				ToolCalls: []openai.ToolCall{
					{
						ID:   "call_1",
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      "fetch_top_news",
							Arguments: `{"maxArticles": 3}`,
						},
					},
					{
						ID:   "call_2",
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      "read_article",
							Arguments: `{"url": "https://x"}`,
						},
					},
				},
			},
		}},
	}

	out, err := fromWireResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Content != nil {
		t.Errorf("content must be nil for tool-only responses, got %v", *out.Content)
	}
	if len(out.ToolCalls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(out.ToolCalls))
	}
	if out.ToolCalls[0].ID != "call_1" || out.ToolCalls[1].ID != "call_2" {
		t.Errorf("order must be preserved: %+v", out.ToolCalls)
	}
	if got := out.ToolCalls[0].Arguments["maxArticles"]; got != float64(3) {
		t.Errorf("arguments not decoded: %v", got)
	}
}

func TestFromWireResponse_MalformedArguments(t *testing.T) {
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: "assistant",
				ToolCalls: []openai.ToolCall{{
					ID:       "call_1",
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: "fetch_top_news", Arguments: `{not json`},
				}},
			},
		}},
	}

	if _, err := fromWireResponse(resp); err == nil {
		t.Fatal("malformed argument JSON must be a hard error for the call")
	}
}
