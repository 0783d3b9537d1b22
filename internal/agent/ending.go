package agent

import (
	"errors"
	"strings"

	"github.com/newshound/newshound/internal/schema"
)

// ErrMalformedState reports a broken conversation invariant, e.g. asking
// whether an absent message ends the chat. It indicates a bug in the loop
// itself and is the only error allowed to terminate the run.
var ErrMalformedState = errors.New("malformed conversation state")

// chatEndSignals is a subset of the possible phrases that end the chat.
var chatEndSignals = []string{
	"bye",
	"goodbye",
	"exit",
	"quit",
	"see you",
	"later",
	"farewell",
	"good night",
	"end chat",
	"close",
	"i'm done",
	"i am done",
	"that's all",
	"finish",
	"stop",
}

// IsChatEnding reports whether msg signals the end of the conversation.
//
// Only user-authored content is checked, case-insensitively. For multi-part
// content only the first segment is scanned: a user opening with an image is
// assumed not to be leaving. A nil msg is a precondition violation.
func IsChatEnding(msg *schema.Message) (bool, error) {
	if msg == nil {
		return false, ErrMalformedState
	}
	if msg.Role != "user" {
		return false, nil
	}

	var text string
	switch c := msg.Content.(type) {
	case string:
		text = c
	case []schema.ContentBlock:
		if len(c) == 0 || c[0].Type != "text" {
			return false, nil
		}
		text = c[0].Text
	default:
		return false, nil
	}

	lowered := strings.ToLower(text)
	for _, signal := range chatEndSignals {
		if strings.Contains(lowered, signal) {
			return true, nil
		}
	}
	return false, nil
}
