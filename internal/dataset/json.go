package dataset

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/promptkit/internal/model"
)

// LoadConversationJSON reads a single conversation from a JSON file that is
// either a bare array of turns or a conversation object with an "items"
// field.
func LoadConversationJSON(path string) (Conversation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, err
	}
	return ParseConversationJSON(raw)
}

func ParseConversationJSON(raw []byte) (Conversation, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Conversation{}, fmt.Errorf("parse conversation json: %w", err)
	}
	switch probe.(type) {
	case []any:
		var items []model.Turn
		if err := json.Unmarshal(raw, &items); err != nil {
			return Conversation{}, fmt.Errorf("parse turns: %w", err)
		}
		return Conversation{Items: items}, nil
	case map[string]any:
		var conv Conversation
		if err := json.Unmarshal(raw, &conv); err != nil {
			return Conversation{}, fmt.Errorf("parse conversation: %w", err)
		}
		if conv.Items == nil {
			return Conversation{}, fmt.Errorf("conversation object missing \"items\" field")
		}
		return conv, nil
	default:
		return Conversation{}, fmt.Errorf("conversation json must be array or object")
	}
}
