package model

import (
	"errors"
	"testing"
)

// fakeVocab hands every distinct string a stable, unique id span so tests
// can assert exact token layout without a real tokenizer.
type fakeVocab struct {
	text    map[string][]int
	special map[string]int
	next    int
}

func newFakeVocab() *fakeVocab {
	return &fakeVocab{
		text:    make(map[string][]int),
		special: make(map[string]int),
		next:    1,
	}
}

func (v *fakeVocab) encode(text string) ([]int, error) {
	if ids, ok := v.text[text]; ok {
		return ids, nil
	}
	ids := []int{v.next, v.next + 1}
	v.next += 2
	v.text[text] = ids
	return ids, nil
}

func (v *fakeVocab) encodeSpecial(token string) (int, error) {
	if id, ok := v.special[token]; ok {
		return id, nil
	}
	id := 1000 + len(v.special)
	v.special[token] = id
	return id, nil
}

func str(s string) *string { return &s }

func testConfig() *Config {
	return &Config{
		Name: "test",
		Prefix: PrefixTable(map[string]string{
			"human": "Human: ",
			"gpt":   "Assistant: ",
		}),
		AIRole:   "gpt",
		EOTToken: "<|end_of_turn|>",
		BOSToken: "<s>",
	}
}

func TestConversationTemplateLayout(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	tokens, masks, group, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "human", Value: str("hi")},
		{From: "gpt", Value: str("yo")},
	}, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if group != 0 {
		t.Fatalf("group: got %d want 0", group)
	}
	if len(tokens) != len(masks) {
		t.Fatalf("length mismatch: %d tokens, %d masks", len(tokens), len(masks))
	}

	bos := vocab.special["<s>"]
	eot := vocab.special["<|end_of_turn|>"]
	var want []int
	want = append(want, bos)
	want = append(want, vocab.text["Human: "]...)
	want = append(want, vocab.text["hi"]...)
	want = append(want, eot)
	want = append(want, vocab.text["Assistant: "]...)
	want = append(want, vocab.text["yo"]...)
	want = append(want, eot)

	if len(tokens) != len(want) {
		t.Fatalf("token count: got %d want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: got %d want %d", i, tokens[i], want[i])
		}
	}

	// Only the final "yo" value plus its end-of-turn token are targets.
	targetStart := len(want) - len(vocab.text["yo"]) - 1
	for i, m := range masks {
		wantMask := i >= targetStart
		if m != wantMask {
			t.Fatalf("mask %d: got %v want %v", i, m, wantMask)
		}
	}
}

func TestConversationTemplateSystemPrompt(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()
	cfg.System = "You are a helpful assistant."

	tokens, masks, _, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "human", Value: str("hi")},
	}, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(tokens) != len(masks) {
		t.Fatalf("length mismatch: %d tokens, %d masks", len(tokens), len(masks))
	}
	// No AI turn, so nothing is a training target.
	for i, m := range masks {
		if m {
			t.Fatalf("mask %d unexpectedly true", i)
		}
	}
	// Preamble is BOS, system prompt, end-of-turn.
	wantPreamble := 1 + len(vocab.text["You are a helpful assistant."]) + 1
	if tokens[0] != vocab.special["<s>"] {
		t.Fatalf("first token: got %d want bos %d", tokens[0], vocab.special["<s>"])
	}
	if tokens[wantPreamble-1] != vocab.special["<|end_of_turn|>"] {
		t.Fatalf("preamble should end with eot token")
	}
}

func TestConversationTemplateEmptyConversation(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	tokens, masks, group, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, nil, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if group != 0 {
		t.Fatalf("group: got %d want 0", group)
	}
	// BOS only: no system prompt is configured.
	if len(tokens) != 1 || tokens[0] != vocab.special["<s>"] {
		t.Fatalf("tokens: got %v want just bos", tokens)
	}
	if len(masks) != 1 || masks[0] {
		t.Fatalf("masks: got %v want [false]", masks)
	}
}

func TestConversationTemplateCompletionMarker(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	tokens, masks, _, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "human", Value: str("hi")},
		{From: "gpt"},
	}, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(tokens) != len(masks) {
		t.Fatalf("length mismatch: %d tokens, %d masks", len(tokens), len(masks))
	}
	// The terminal valueless turn contributes its prefix and nothing else.
	prefix := vocab.text["Assistant: "]
	tail := tokens[len(tokens)-len(prefix):]
	for i := range prefix {
		if tail[i] != prefix[i] {
			t.Fatalf("tail token %d: got %d want %d", i, tail[i], prefix[i])
		}
	}
	if masks[len(masks)-1] {
		t.Fatalf("completion prefix must not be a target")
	}
}

func TestConversationTemplateDanglingTurn(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	_, _, _, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "human"},
		{From: "gpt", Value: str("yo")},
	}, nil)
	if !errors.Is(err, ErrDanglingTurn) {
		t.Fatalf("expected ErrDanglingTurn, got %v", err)
	}
}

func TestConversationTemplateUnknownRole(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	_, _, _, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "system", Value: str("nope")},
	}, nil)
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestConversationTemplateGroupWithoutFunc(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocab()
	cfg := testConfig()

	_, _, group, err := cfg.ConversationTemplate(vocab.encode, vocab.encodeSpecial, []Turn{
		{From: "gpt", Value: str("yo")},
	}, &Props{GPT4: true})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if group != 0 {
		t.Fatalf("group without group func: got %d want 0", group)
	}
}
