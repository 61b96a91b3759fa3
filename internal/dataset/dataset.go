// Package dataset turns ShareGPT-style conversation files into encoded
// training records using a model config and tokenizer.
package dataset

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/promptkit/internal/logger"
	"github.com/samcharles93/promptkit/internal/model"
	"github.com/samcharles93/promptkit/internal/tokenizer"
)

// Conversation is one dataset example: an ordered list of turns plus
// optional provenance metadata.
type Conversation struct {
	ID    string       `json:"id,omitempty"`
	Items []model.Turn `json:"items"`
	Props *model.Props `json:"props,omitempty"`
}

// Record is one encoded example.
type Record struct {
	ID     string `json:"id,omitempty"`
	Tokens []int  `json:"tokens"`
	Masks  []bool `json:"masks"`
	Group  int    `json:"group"`
}

type Encoder struct {
	Config    *model.Config
	Tokenizer tokenizer.Tokenizer
}

// EncodeConversation assembles one conversation. Sequences longer than the
// config's max context are truncated, masks in lockstep with tokens.
func (e *Encoder) EncodeConversation(conv Conversation) (Record, error) {
	tokens, masks, group, err := e.Config.ConversationTemplate(
		e.Tokenizer.Encode, e.Tokenizer.EncodeSpecial, conv.Items, conv.Props)
	if err != nil {
		return Record{}, err
	}
	if e.Config.MaxContext > 0 && len(tokens) > e.Config.MaxContext {
		tokens = tokens[:e.Config.MaxContext]
		masks = masks[:e.Config.MaxContext]
	}
	return Record{ID: conv.ID, Tokens: tokens, Masks: masks, Group: group}, nil
}

// Stats summarizes one EncodeStream run.
type Stats struct {
	Read    int
	Encoded int
	Failed  int
}

// EncodeStream reads conversations as JSONL from r and writes encoded
// records as JSONL to w. A conversation that fails to assemble is logged
// and skipped; it never produces a partial record.
func (e *Encoder) EncodeStream(r io.Reader, w io.Writer, log logger.Logger) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	out := bufio.NewWriter(w)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		stats.Read++

		var conv Conversation
		if err := json.Unmarshal(raw, &conv); err != nil {
			log.Warn("skipping malformed record", "line", line, "error", err)
			stats.Failed++
			continue
		}
		rec, err := e.EncodeConversation(conv)
		if err != nil {
			log.Warn("skipping conversation", "line", line, "id", conv.ID, "error", err)
			stats.Failed++
			continue
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return stats, fmt.Errorf("encode record at line %d: %w", line, err)
		}
		if _, err := out.Write(append(encoded, '\n')); err != nil {
			return stats, fmt.Errorf("write record at line %d: %w", line, err)
		}
		stats.Encoded++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read dataset: %w", err)
	}
	return stats, out.Flush()
}
