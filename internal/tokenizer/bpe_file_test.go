package tokenizer

import "testing"

func testVocabJSON() []byte {
	return []byte(`{
		"model":{
			"type":"BPE",
			"vocab":{"h":0,"i":1,"hi":2,"y":3,"o":4,"yo":8,"<unk>":7},
			"merges":["h i","y o"],
			"unk_token":"<unk>"
		},
		"added_tokens":[
			{"id":5,"content":"<s>","special":true},
			{"id":6,"content":"<|end_of_turn|>","special":true}
		]
	}`)
}

func loadTestBPE(t *testing.T) *BPE {
	t.Helper()
	tok, err := LoadBPEBytes(testVocabJSON())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tok
}

func TestBPEEncode(t *testing.T) {
	t.Parallel()

	tok := loadTestBPE(t)
	ids, err := tok.Encode("hi")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("encode hi: got %v want [2]", ids)
	}
}

func TestBPEEncodeInlineSpecial(t *testing.T) {
	t.Parallel()

	tok := loadTestBPE(t)
	ids, err := tok.Encode("hi<|end_of_turn|>yo")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []int{2, 6, 8}
	if len(ids) != len(want) {
		t.Fatalf("got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("id %d: got %d want %d", i, ids[i], want[i])
		}
	}
}

func TestBPEEncodeSpecial(t *testing.T) {
	t.Parallel()

	tok := loadTestBPE(t)
	id, err := tok.EncodeSpecial("<s>")
	if err != nil {
		t.Fatalf("encode special: %v", err)
	}
	if id != 5 {
		t.Fatalf("bos id: got %d want 5", id)
	}
	if _, err := tok.EncodeSpecial("<|nope|>"); err == nil {
		t.Fatalf("expected error for unknown special token")
	}
}

func TestBPEUnknownFallsBackToUnk(t *testing.T) {
	t.Parallel()

	tok := loadTestBPE(t)
	ids, err := tok.Encode("z")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(ids) != 1 || ids[0] != 7 {
		t.Fatalf("got %v want [7]", ids)
	}
}

func TestBPEDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tok := loadTestBPE(t)
	ids, err := tok.Encode("hi<|end_of_turn|>")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text, err := tok.Decode(ids)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if text != "hi<|end_of_turn|>" {
		t.Fatalf("round trip: got %q", text)
	}
}

func TestBPERejectsNonBPEModel(t *testing.T) {
	t.Parallel()

	_, err := LoadBPEBytes([]byte(`{"model":{"type":"WordPiece","vocab":{},"merges":[]}}`))
	if err == nil {
		t.Fatalf("expected unsupported tokenizer model error")
	}
}
