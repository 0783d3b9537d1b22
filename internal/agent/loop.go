// Package agent implements the dialogue loop: the state machine that
// sequences model calls, tool dispatch and end-of-conversation detection.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/newshound/newshound/internal/schema"
	"github.com/newshound/newshound/internal/shared/llmutils"
	"github.com/newshound/newshound/internal/tools"
)

// DialogueLoop owns the ordered message history for one conversation and
// drives it: model call → classification → tool dispatch → back to the model,
// until the user signals the end.
//
// Everything the loop waits on (the model, a tool, user input) is a
// sequential suspension point; tool invocations in one batch run strictly in
// the order the model listed them so the transcript reflects real invocation
// order. No other component writes to the history.
type DialogueLoop struct {
	provider schema.LLMProvider
	registry *tools.Registry
	input    UserInput
	out      io.Writer
	settings schema.AgentSettings
	log      *slog.Logger
}

// NewDialogueLoop creates a DialogueLoop. log may be nil, in which case the
// default slog logger is used.
func NewDialogueLoop(
	provider schema.LLMProvider,
	registry *tools.Registry,
	input UserInput,
	out io.Writer,
	settings schema.AgentSettings,
	log *slog.Logger,
) *DialogueLoop {
	if log == nil {
		log = slog.Default()
	}
	return &DialogueLoop{
		provider: provider,
		registry: registry,
		input:    input,
		out:      out,
		settings: settings,
		log:      log,
	}
}

// Run drives the conversation until the user says goodbye, input is
// exhausted, or ctx is cancelled. The returned error is nil on a normal
// ending; ErrMalformedState signals a broken loop invariant.
//
// Single-turn failures such as a failed model call or an unrecognized tool
// never end the run: they are logged, the fallback notice is printed and a
// fresh user turn is requested.
func (l *DialogueLoop) Run(ctx context.Context) error {
	start := time.Now()
	l.log.Info("News agent started")

	conversation := schema.NewMessages()
	conversation.AddSystem(SystemPrompt)

	fmt.Fprintln(l.out, WelcomePrompt)

	if done, err := l.appendUserTurn(ctx, &conversation); done || err != nil {
		return err
	}

	for {
		ending, err := IsChatEnding(conversation.Last())
		if err != nil {
			return err
		}
		if ending {
			break
		}

		resp, err := l.provider.Chat(ctx,
			conversation,
			l.registry.Definitions(),
			schema.NewChatOptions(l.settings.Model, l.settings.MaxTokens, l.settings.Temperature),
		)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			l.log.Error("Model call failed", "err", err)
			if done, err := l.fallbackTurn(ctx, &conversation); done || err != nil {
				return err
			}
			continue
		}

		switch {
		case resp.HasToolCalls():
			if err := l.dispatchTools(ctx, &conversation, resp); err != nil {
				l.log.Error("Tool dispatch failed", "err", err)
				if done, err := l.fallbackTurn(ctx, &conversation); done || err != nil {
					return err
				}
			}
			// Tool results are appended; go straight back to the model.

		case resp.Content != nil && strings.TrimSpace(*resp.Content) != "":
			fmt.Fprintf(l.out, "Assistant: %s\n", *resp.Content)
			if done, err := l.appendUserTurn(ctx, &conversation); done || err != nil {
				return err
			}

		default:
			l.log.Warn("Empty response from the model")
			if done, err := l.fallbackTurn(ctx, &conversation); done || err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(l.out, EndPrompt)
	l.log.Info("News agent finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// dispatchTools appends the assistant turn and then executes its tool calls
// strictly in the order the model returned them, appending one tool message
// per call. An unrecognized tool name aborts the batch with an error: the
// model asked for a capability outside the registry.
func (l *DialogueLoop) dispatchTools(ctx context.Context, conversation *schema.Messages, resp schema.LLMResponse) error {
	toolCalls := make([]schema.ToolCall, 0, len(resp.ToolCalls))
	for _, tc := range resp.ToolCalls {
		toolCalls = append(toolCalls, schema.ToolCall{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments})
	}
	conversation.AddAssistant(resp.Content, toolCalls)

	// Sequential on purpose: later calls may depend on earlier ones, and the
	// transcript must reflect real invocation order. Parallelising
	// independent calls is a possible future optimisation.
	for _, tc := range resp.ToolCalls {
		tool := l.registry.Get(tc.Name)
		if tool == nil {
			return fmt.Errorf("unrecognized tool %q requested by the model", tc.Name)
		}

		l.log.Info("Tool call", "name", tc.Name, "hint", llmutils.ToolHint([]schema.ToolCallRequest{tc}))

		result, err := tool.Execute(ctx, tc.Arguments)
		if err != nil {
			return fmt.Errorf("tool %q: %w", tc.Name, err)
		}

		conversation.AddToolResult(tc.ID, tc.Name, result)
	}
	return nil
}

// appendUserTurn blocks for the next user line and appends it verbatim.
// done is true when input is exhausted (EOF) and the run should end cleanly.
func (l *DialogueLoop) appendUserTurn(ctx context.Context, conversation *schema.Messages) (done bool, err error) {
	line, err := l.input.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.out, EndPrompt)
			return true, nil
		}
		return false, err
	}
	conversation.AddUser(line)
	return false, nil
}

// fallbackTurn surfaces the fallback notice and requests fresh user input.
func (l *DialogueLoop) fallbackTurn(ctx context.Context, conversation *schema.Messages) (done bool, err error) {
	fmt.Fprintln(l.out, FallbackPrompt)
	return l.appendUserTurn(ctx, conversation)
}
